package tracelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dumpInner struct {
	Name string
}

type dumpOuter struct {
	ID     int
	Inner  dumpInner
	Tags   []string
	Counts map[string]int
	hidden string
}

func TestService_Dump(t *testing.T) {
	var sink threadSafeBuffer
	svc := sinkService(t, &sink, "debug")
	t.Cleanup(func() { _ = svc.Close() })

	t.Run("dump nil", func(t *testing.T) {
		svc.Dump(nil)
		assert.Contains(t, sink.String(), "Dump: <nil>")
	})

	t.Run("dump struct", func(t *testing.T) {
		v := dumpOuter{
			ID:     7,
			Inner:  dumpInner{Name: "leaf"},
			Tags:   []string{"a", "b"},
			Counts: map[string]int{"x": 1},
			hidden: "not logged",
		}
		svc.Dump(v)

		out := sink.String()
		assert.Contains(t, out, "dumpOuter")
		assert.Contains(t, out, "ID: 7")
		assert.Contains(t, out, "Inner.Name: leaf")
		assert.Contains(t, out, "Tags[0]: a")
		assert.Contains(t, out, "Counts[x]: 1")
		assert.NotContains(t, out, "not logged")
	})

	t.Run("dump circular pointer", func(t *testing.T) {
		type node struct {
			Next *node
		}
		n := &node{}
		n.Next = n

		svc.Dump(n)
		assert.Contains(t, sink.String(), "<circular reference>")
	})

	t.Run("dump basic value", func(t *testing.T) {
		svc.Dump(42)
		assert.Contains(t, sink.String(), ": 42")
	})
}

func TestDump_GlobalPipeline(t *testing.T) {
	require.Nil(t, globalService.Load())

	// Safe no-op before Init.
	require.NotPanics(t, func() { Dump(dumpOuter{ID: 3}) })

	var sink threadSafeBuffer
	guard, err := InitGlobalTracing("dumper", t.TempDir(), "debug", &sink)
	require.NoError(t, err)

	Dump(dumpOuter{ID: 3})
	require.NoError(t, guard.Close())

	assert.Contains(t, sink.String(), "ID: 3")

	// No-op again once the guard is closed.
	require.NotPanics(t, func() { Dump(dumpOuter{ID: 4}) })
}

func TestService_DumpUninitialized(t *testing.T) {
	svc := &Service{}
	require.NotPanics(t, func() { svc.Dump(struct{ A int }{A: 1}) })
}

func TestService_DumpSuppressedAboveDebug(t *testing.T) {
	var sink threadSafeBuffer
	svc := sinkService(t, &sink, "info")
	t.Cleanup(func() { _ = svc.Close() })

	svc.Dump(dumpOuter{ID: 9})
	assert.NotContains(t, sink.String(), "ID: 9")
}
