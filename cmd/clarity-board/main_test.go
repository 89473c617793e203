package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectItemLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"clarity-board"},
			want: []string{"clarity-board"},
		},
		{
			name: "item id first",
			in:   []string{"clarity-board", "item-abc123"},
			want: []string{"clarity-board", "show", "item-abc123"},
		},
		{
			name: "item id after value flags",
			in:   []string{"clarity-board", "--backend", "redis", "--dir", "./ws", "item-abc123"},
			want: []string{"clarity-board", "--backend", "redis", "--dir", "./ws", "show", "item-abc123"},
		},
		{
			name: "item id after equals and bool flags",
			in:   []string{"clarity-board", "--dir=./ws", "--pretty", "item-abc123"},
			want: []string{"clarity-board", "--dir=./ws", "--pretty", "show", "item-abc123"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"clarity-board", "move", "item-abc123", "completed"},
			want: []string{"clarity-board", "move", "item-abc123", "completed"},
		},
		{
			name: "bare prefix is not an id",
			in:   []string{"clarity-board", "item-"},
			want: []string{"clarity-board", "item-"},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectItemLookupArgs(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
