package versioning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientVersion(t *testing.T) {
	assert.Equal(t, "objectchain/dev", ClientVersion())

	Version, Commit = "v0.1.0", "0123456789abcdef"

	defer func() {
		Version, Commit = "", ""
	}()

	assert.Equal(t, "objectchain/v0.1.0-01234567", ClientVersion())
}
