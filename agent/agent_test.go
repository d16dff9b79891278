// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gtaska/graphtail/pkg/config"
)

// syncBuffer is written by the agent goroutine and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestConfig(t *testing.T, inputs []string, pairs ...string) *config.Config {
	kv := config.NewKeyValues()
	for i := 0; i+1 < len(pairs); i += 2 {
		kv.Set(pairs[i], pairs[i+1])
	}
	cfg, err := config.ApplyConfiguration(kv)
	require.NoError(t, err)
	cfg.Inputs = inputs
	return cfg
}

func writeFile(t *testing.T, path, data string) {
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func appendFile(t *testing.T, path, data string) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	_, err = f.WriteString(data)
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	tests := map[string]struct {
		cfg     *config.Config
		wantErr bool
		wantOut string
	}{
		"no inputs with netdata output": {
			cfg:     newTestConfig(t, nil, "output", "netdata"),
			wantErr: true,
			wantOut: "DISABLE\n",
		},
		"no inputs with text output": {
			cfg:     newTestConfig(t, nil, "output", "text"),
			wantErr: true,
		},
		"bad pattern": {
			cfg:     newTestConfig(t, []string{filepath.Join(dir, "a[.csv")}, "output", "none"),
			wantErr: true,
		},
		"missing file is accepted": {
			cfg: newTestConfig(t, []string{filepath.Join(dir, "later.csv")}, "output", "none"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			a, err := New(Config{Name: "graphtail", Graphs: test.cfg, Out: &out})

			if test.wantErr {
				assert.Error(t, err)
				assert.Nil(t, a)
			} else {
				require.NoError(t, err)
				assert.Len(t, a.tailers, 1)
			}
			assert.Equal(t, test.wantOut, out.String())
		})
	}
}

func TestAgent_expandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv", "c.txt"} {
		writeFile(t, filepath.Join(dir, name), "x\n")
	}
	home, err := homedir.Dir()
	require.NoError(t, err)

	a := &Agent{}
	paths, err := a.expandInputs([]string{
		filepath.Join(dir, "*.csv"),
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "missing.csv"),
		filepath.Join(dir, "*.none"),
		"~/stats.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.csv"),
		filepath.Join(dir, "missing.csv"),
		filepath.Join(home, "stats.csv"),
	}, paths)
}

func TestAgent_tick_text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "a;b\n1;2\n")

	var out bytes.Buffer
	a, err := New(Config{Graphs: newTestConfig(t, []string{path}, "output", "text"), Out: &out})
	require.NoError(t, err)
	defer a.closeInputs()

	a.tick()
	assert.Contains(t, out.String(), "auto_a [a] range 1..1")
	assert.Contains(t, out.String(), "  b last=2 avg=2 min=2 max=2 n=1")

	out.Reset()
	a.tick()
	assert.Empty(t, out.String())

	appendFile(t, path, "3;4\n")
	a.tick()
	assert.Contains(t, out.String(), "  a last=3 avg=2 min=1 max=3 n=2")
}

func TestAgent_tick_netdata(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "a;b\n1;2\n")

	var out bytes.Buffer
	cfg := newTestConfig(t, []string{path}, "output", "netdata", "groups", "{i(a)i(b)}")
	a, err := New(Config{Graphs: cfg, Out: &out})
	require.NoError(t, err)
	defer a.closeInputs()

	a.tick()

	assert.Contains(t, out.String(), "CHART 'graphtail.group_1' '' 'a,b'")
	assert.Contains(t, out.String(), "DIMENSION 'a' 'a' 'absolute' '1' '1' ''\n")
	assert.Contains(t, out.String(), "BEGIN 'graphtail.group_1'\nSET 'a' = 1\nSET 'b' = 2\nEND\n\n")
}

func TestAgent_run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	writeFile(t, path, "v\n")

	var out syncBuffer
	cfg := newTestConfig(t, []string{path}, "output", "text", "update_every", "10ms")
	a, err := New(Config{Graphs: cfg, Out: &out})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { defer close(done); a.run(ctx) }()

	appendFile(t, path, "42\n")

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("v last=42"))
	}, 5*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
	for _, tl := range a.tailers {
		assert.False(t, tl.IsOpen())
	}
}
