package main

import (
	"reflect"
	"testing"
)

func TestRewriteFileArg(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"countdown"},
			want: []string{"countdown"},
		},
		{
			name: "path first token",
			in:   []string{"countdown", "config.json"},
			want: []string{"countdown", "--file", "config.json"},
		},
		{
			name: "path after value flag",
			in:   []string{"countdown", "--log-level", "debug", "/media/CIRCUITPY/config.json"},
			want: []string{"countdown", "--log-level", "debug", "--file", "/media/CIRCUITPY/config.json"},
		},
		{
			name: "path after equals flag",
			in:   []string{"countdown", "--format=edn", "sd/Config.JSON"},
			want: []string{"countdown", "--format=edn", "--file", "sd/Config.JSON"},
		},
		{
			name: "path after bool flag",
			in:   []string{"countdown", "--pretty", "config.json"},
			want: []string{"countdown", "--pretty", "--file", "config.json"},
		},
		{
			name: "path after double dash",
			in:   []string{"countdown", "--", "config.json"},
			want: []string{"countdown", "--file", "config.json"},
		},
		{
			name: "explicit --file value is not rewritten",
			in:   []string{"countdown", "--file", "config.json", "events", "list"},
			want: []string{"countdown", "--file", "config.json", "events", "list"},
		},
		{
			name: "subcommand not rewritten",
			in:   []string{"countdown", "events", "list"},
			want: []string{"countdown", "events", "list"},
		},
		{
			name: "subcommand argument not rewritten",
			in:   []string{"countdown", "history", "restore", "3"},
			want: []string{"countdown", "history", "restore", "3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteFileArg(append([]string(nil), tt.in...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}
