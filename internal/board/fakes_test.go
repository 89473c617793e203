package board

import (
	"context"
	"errors"
	"slices"
	"sync"

	"clarity-board/internal/model"
)

type card struct {
	Title string
}

type item = model.Item[card]

func it(id string, st model.Status) item {
	return item{ID: id, Status: st, Payload: card{Title: "title " + id}}
}

func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, x := range items {
		out = append(out, x.ID)
	}
	return out
}

type fakeDirectory struct {
	mu    sync.Mutex
	items []item
	err   error
	calls int
}

func (d *fakeDirectory) FetchAll(ctx context.Context) ([]item, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return slices.Clone(d.items), nil
}

func (d *fakeDirectory) fetches() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

type setStatusCall struct {
	ItemID string
	Status model.Status
}

type fakePersistence struct {
	mu    sync.Mutex
	calls []setStatusCall
	err   error
	// block makes SetStatus wait for ctx to end.
	block bool
}

var errRejected = errors.New("rejected")

func (p *fakePersistence) SetStatus(ctx context.Context, itemID string, status model.Status) error {
	p.mu.Lock()
	p.calls = append(p.calls, setStatusCall{ItemID: itemID, Status: status})
	err := p.err
	block := p.block
	p.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (p *fakePersistence) recorded() []setStatusCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.calls)
}
