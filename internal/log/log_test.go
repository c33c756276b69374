// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level log.Level
		trace bool
	}{
		{"", log.ErrorLevel, false},
		{"bogus", log.ErrorLevel, false},
		{"trace", log.DebugLevel, true},
		{"DEBUG", log.DebugLevel, false},
		{" info ", log.InfoLevel, false},
		{"warn", log.WarnLevel, false},
		{"error", log.ErrorLevel, false},
		{"fatal", log.FatalLevel, false},
	}

	for _, tt := range tests {
		level, trace := ParseLevel(tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.trace, trace, tt.in)
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "filter evaluation failed", Timestamp: at,
		Fields: log.Fields{"error": errors.New("boom")}}))
	require.NoError(t, h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: deep", Timestamp: at}))

	assert.Equal(t,
		"2026-03-01 12:30:00 W filter evaluation failed error=boom\n"+
			"2026-03-01 12:30:00 T deep\n",
		buf.String())
}
