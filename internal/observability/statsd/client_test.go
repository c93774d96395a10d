package statsd

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimPrefix(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"  docparse.worker  ": "docparse.worker",
		"..docparse..":        "docparse",
		".":                   "",
		"":                    "",
	}

	for input, want := range tests {
		assert.Equal(t, want, trimPrefix(input), "trimPrefix(%q)", input)
	}
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" tasks/completed ":   "tasks_completed",
		"tasks..duration":     "tasks.duration",
		"parse result":        "parse_result",
		"worker/claim/failed": "worker_claim_failed",
	}

	for input, want := range tests {
		assert.Equal(t, want, cleanName(input), "cleanName(%q)", input)
	}
}

func TestEncodeTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env":      "prod",
		" worker ": " worker-a ", // padded key/value must be trimmed
	}
	local := map[string]string{
		"parser": " markitdown ",
		"":       "ignored",
		"env":    "stage", // per-call tag overrides the global one
	}

	got := encodeTags(global, local)
	assert.Equal(t, "|#env:stage,parser:markitdown,worker:worker-a", got)
}

func TestEncodeTagsEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, encodeTags(nil, nil))
	assert.Empty(t, encodeTags(map[string]string{"": "x", " ": "y"}, nil))
}

func TestCopyTagsReturnsIndependentMap(t *testing.T) {
	t.Parallel()

	original := map[string]string{
		"env": "prod",
		"":    "dropped",
	}

	cloned := copyTags(original)
	require.NotNil(t, cloned)
	assert.NotContains(t, cloned, "")

	cloned["env"] = "stage"
	assert.Equal(t, "prod", original["env"], "mutating the copy must not touch the source")
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	withPrefix := &Client{prefix: "docparse"}
	assert.Equal(t, "docparse.tasks.completed", withPrefix.qualifiedName("tasks.completed"))
	assert.Empty(t, withPrefix.qualifiedName(""))

	bare := &Client{}
	assert.Equal(t, "tasks.completed", bare.qualifiedName("tasks.completed"))
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{
		enabled: true,
		conn:    clientConn,
	}

	assert.True(t, client.Enabled())

	require.NoError(t, client.Close())
	assert.False(t, client.Enabled())

	// Close is idempotent.
	require.NoError(t, client.Close())

	var nilClient *Client
	assert.False(t, nilClient.Enabled())
	require.NoError(t, nilClient.Close())
}

func TestNilClientEmissionIsNoop(t *testing.T) {
	t.Parallel()

	var client *Client
	client.Count("tasks.completed", 1, nil)
	client.Gauge("workers.active", 2, nil)
	client.Timing("tasks.duration", time.Second, nil)
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{
		Enabled: true,
		Address: "   ",
	})
	require.NoError(t, err)
	assert.False(t, client.Enabled(), "empty address must leave the client disabled")
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{
		Enabled: true,
		Address: "bad address",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statsd dial")
}
