package tracelog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/openmeta-io/tracelog/errs"
)

type logEntry map[string]any

func TestBuildErrorChain_WithDetailedAndStd(t *testing.T) {
	inner := errs.New("db.Connect").Msg("dial tcp 127.0.0.1:5432: connect: connection refused")
	middle := errs.New("db.Open").Err(inner).Msg("failed to connect to database")
	outer := errs.New("server.Start").Err(middle).Msg("startup failed")

	chain, ops, root, rootOp := buildErrorChain(outer)
	assert.Equal(t, []string{
		"startup failed",
		"failed to connect to database",
		"dial tcp 127.0.0.1:5432: connect: connection refused",
	}, chain)
	assert.Equal(t, []string{"server.Start", "db.Open", "db.Connect"}, ops)
	assert.Equal(t, "dial tcp 127.0.0.1:5432: connect: connection refused", root)
	assert.Equal(t, "db.Connect", rootOp)

	// Wrapping through a plain fmt layer keeps the traversal going.
	wrapped := errs.New("wrap.Std").Errorf("wrap: %w", outer)
	chain2, _, root2, _ := buildErrorChain(wrapped)
	assert.True(t, strings.HasPrefix(chain2[0], "wrap:"))
	assert.Equal(t, root, root2)
}

func TestBuildErrorChain_NilError(t *testing.T) {
	chain, ops, root, rootOp := buildErrorChain(nil)
	assert.Empty(t, chain)
	assert.Empty(t, ops)
	assert.Empty(t, root)
	assert.Empty(t, rootOp)
}

func TestJoinChain(t *testing.T) {
	assert.Equal(t, "", joinChain(nil))
	assert.Equal(t, "a -> b", joinChain([]string{"a", "b"}))
}

func TestEventErr_EmitsChainFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	le := newLogEvent(logger.Error())

	inner := errs.New("db.Connect").Msg("dial tcp 127.0.0.1:5432: connect: connection refused")
	outer := errs.New("server.Start").Err(inner).Msg("startup failed")

	le.Err(outer).Msg("boom")

	var entry logEntry
	dec := json.NewDecoder(&buf)
	if err := dec.Decode(&entry); err != nil {
		t.Fatalf("failed to decode json log: %v", err)
	}

	// Zerolog sets error field by key "error"
	if v, ok := entry[zerolog.ErrorFieldName]; !ok || v == "" {
		t.Fatalf("expected %q field to be present", zerolog.ErrorFieldName)
	}

	if _, ok := entry["error_chain"]; !ok {
		t.Fatal("expected error_chain field to be present")
	}
	if _, ok := entry["error_root"]; !ok {
		t.Fatal("expected error_root field to be present")
	}
	if _, ok := entry["error_history"]; !ok {
		t.Fatal("expected error_history field to be present")
	}
	if _, ok := entry["error_ops"]; !ok {
		t.Fatal("expected error_ops field to be present")
	}
	assert.Equal(t, "db.Connect", entry["error_root_op"])
}

func TestEventAnErr_EmitsPrefixedChainFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	le := newLogEvent(logger.Error())

	cause := errs.New("flush.Write").Msg("short write")
	le.AnErr("flush_err", cause).Msg("flush failed")

	var entry logEntry
	dec := json.NewDecoder(&buf)
	if err := dec.Decode(&entry); err != nil {
		t.Fatalf("failed to decode json log: %v", err)
	}

	assert.Contains(t, entry, "flush_err")
	assert.Contains(t, entry, "flush_err_chain")
	assert.Contains(t, entry, "flush_err_root")
	assert.Contains(t, entry, "flush_err_history")
	assert.Equal(t, "flush.Write", entry["flush_err_root_op"])
}
