package log

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	sync.Mutex
	buf bytes.Buffer
}

func (sb *syncBuffer) Write(p []byte) (int, error) {
	sb.Lock()
	defer sb.Unlock()
	return sb.buf.Write(p)
}

func (sb *syncBuffer) String() string {
	sb.Lock()
	defer sb.Unlock()
	return sb.buf.String()
}

func TestLogging(t *testing.T) {
	out := &syncBuffer{}
	SetOutput(out, false)

	// logged before start, must survive in the buffer
	Warning("early bird")

	err := Start()
	require.NoError(t, err)

	// set levels (static random)
	SetLogLevel(WarningLevel)
	SetLogLevel(InfoLevel)
	SetLogLevel(ErrorLevel)
	SetLogLevel(DebugLevel)
	SetLogLevel(CriticalLevel)
	SetLogLevel(TraceLevel)
	assert.Equal(t, TraceLevel, GetLogLevel())

	// log
	Trace("Trace")
	Debug("Debug")
	Info("Info")
	Warning("Warning")
	Error("Error")
	Critical("Critical")

	// logf
	Tracef("Trace %s", "f")
	Debugf("Debug %s", "f")
	Infof("Info %s", "f")
	Warningf("Warning %s", "f")
	Errorf("Error %s", "f")
	Criticalf("Critical %s", "f")

	// play with levels
	SetLogLevel(CriticalLevel)
	Warning("suppressed")
	SetLogLevel(TraceLevel)

	// log invalid level
	log(0xFF, "msg")

	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Critical f")
	}, time.Second, 5*time.Millisecond)

	written := out.String()
	assert.Contains(t, written, "early bird")
	assert.Contains(t, written, "WARN")
	assert.Contains(t, written, "Trace f")
	assert.NotContains(t, written, "suppressed")

	// package levels
	SetPkgLevels(map[string]Severity{"log": ErrorLevel})
	Info("hidden by package level")
	Error("shown by package level")
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "shown by package level")
	}, time.Second, 5*time.Millisecond)
	assert.NotContains(t, out.String(), "hidden by package level")
	UnSetPkgLevels()
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TraceLevel, ParseLevel("trace"))
	assert.Equal(t, WarningLevel, ParseLevel("WARNING"))
	assert.Equal(t, CriticalLevel, ParseLevel("critical"))
	assert.Equal(t, Severity(0), ParseLevel("loud"))
}

func TestFormatLine(t *testing.T) {
	line := &logLine{
		msg:       "pool seeded",
		level:     InfoLevel,
		timestamp: time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC),
		file:      "/src/jitterpool/jitter/pool",
		line:      42,
	}

	formatted := formatLine(line, false)
	assert.True(t, strings.HasPrefix(formatted, "210304 05:06:07.000 itter/pool:042 ▶ INFO "), formatted)
	assert.True(t, strings.HasSuffix(formatted, " pool seeded"), formatted)

	colored := formatLine(line, true)
	assert.True(t, strings.HasPrefix(colored, colorBlue))
}
