package contract

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsInvalidArchive(t *testing.T) {
	cause := errors.New("zip: not a valid zip file")
	wrapped := fmt.Errorf("failed to analyze: %w", &InvalidArchiveError{Path: "a.zip", Detail: "Corrupted zip archive", Err: cause})

	invalid, ok := AsInvalidArchive(wrapped)
	require.True(t, ok)
	assert.Equal(t, "Corrupted zip archive", invalid.Detail)
	assert.ErrorIs(t, wrapped, cause)
	assert.JSONEq(t, `{"error":"InvalidInput","detail":"Corrupted zip archive"}`, invalid.PayloadJSON())

	_, ok = AsInvalidArchive(ErrConsentRequired)
	assert.False(t, ok)
	_, ok = AsInvalidArchive(nil)
	assert.False(t, ok)
}

func TestInvalidArchiveErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid archive: Expected a .zip archive", (&InvalidArchiveError{Detail: "Expected a .zip archive"}).Error())
	assert.Equal(t, "invalid archive x.txt: Expected a .zip archive", (&InvalidArchiveError{Path: "x.txt", Detail: "Expected a .zip archive"}).Error())
}
