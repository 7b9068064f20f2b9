package signing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", 10)
	token, exp, err := tm.Issue("Nodal_2024_3.xlsx")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), exp, 5*time.Second)

	assert.NoError(t, tm.Verify(token, "Nodal_2024_3.xlsx"))
	assert.ErrorIs(t, tm.Verify(token, "Studio_Press_2024_3.xlsx"), ErrInvalidToken)
	assert.ErrorIs(t, NewTokenManager("other", 10).Verify(token, "Nodal_2024_3.xlsx"), ErrInvalidToken)
	assert.ErrorIs(t, tm.Verify("garbage", "Nodal_2024_3.xlsx"), ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tm.now = func() time.Time { return issued }
	token, _, err := tm.Issue("f.xlsx")
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(2 * time.Minute) }
	assert.ErrorIs(t, tm.Verify(token, "f.xlsx"), ErrInvalidToken)
}
