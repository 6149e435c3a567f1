package telegram

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

const botToken = "123456:TEST-TOKEN"

func signedInitData(t *testing.T, authDate time.Time) string {
	t.Helper()

	v := url.Values{}
	v.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	v.Set("user", `{"id":42,"first_name":"Anna","last_name":"K","username":"annak"}`)
	v.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	v.Set("hash", Sign(v, botToken))
	return v.Encode()
}

func TestValidate_Valid(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	raw := signedInitData(t, now.Add(-time.Minute))

	data, err := Validate(raw, botToken, time.Hour, now)
	require.NoError(t, err)
	assert.Equal(t, int64(42), data.User.ID)
	assert.Equal(t, "Anna K", data.User.DisplayName())
	assert.Equal(t, now.Add(-time.Minute).Unix(), data.AuthDate.Unix())
}

func TestValidate_TamperedField(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	v, err := url.ParseQuery(signedInitData(t, now))
	require.NoError(t, err)
	v.Set("user", `{"id":1,"first_name":"Mallory"}`)

	_, err = Validate(v.Encode(), botToken, time.Hour, now)
	assert.True(t, httperr.IsBusiness(err, CodeInvalidInitData))
}

func TestValidate_WrongToken(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	_, err := Validate(signedInitData(t, now), "other:token", time.Hour, now)
	assert.True(t, httperr.IsBusiness(err, CodeInvalidInitData))
}

func TestValidate_Expired(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	raw := signedInitData(t, now.Add(-25*time.Hour))

	_, err := Validate(raw, botToken, 24*time.Hour, now)
	assert.True(t, httperr.IsBusiness(err, CodeExpiredInitData))

	_, err = Validate(raw, botToken, 0, now)
	assert.NoError(t, err)
}

func TestValidate_MissingHash(t *testing.T) {
	_, err := Validate("auth_date=1&user=%7B%7D", botToken, 0, time.Now())
	assert.True(t, httperr.IsBusiness(err, CodeInvalidInitData))
}

// memoryGuard mimics SetNX with expiry against an injected clock.
type memoryGuard struct {
	now     func() time.Time
	expires map[string]time.Time
	ttls    []time.Duration
}

func newMemoryGuard(now func() time.Time) *memoryGuard {
	return &memoryGuard{now: now, expires: map[string]time.Time{}}
}

func (g *memoryGuard) Claim(_ context.Context, token string, ttl time.Duration) (bool, error) {
	g.ttls = append(g.ttls, ttl)
	if exp, ok := g.expires[token]; ok && g.now().Before(exp) {
		return false, nil
	}
	g.expires[token] = g.now().Add(ttl)
	return true, nil
}

func TestVerifier_RejectsReplay(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	raw := signedInitData(t, now)

	clock := func() time.Time { return now }
	v := NewVerifier(botToken, time.Hour, newMemoryGuard(clock), time.Hour)
	v.now = clock

	_, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)

	_, err = v.Verify(context.Background(), raw)
	assert.True(t, httperr.IsBusiness(err, CodeReplayedInitData))
}

func TestVerifier_RejectsReplayWithUpperCaseHash(t *testing.T) {
	now := time.Unix(1_760_000_000, 0)
	raw := signedInitData(t, now)

	clock := func() time.Time { return now }
	v := NewVerifier(botToken, time.Hour, newMemoryGuard(clock), time.Hour)
	v.now = clock

	data, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(data.Hash), data.Hash)

	q, err := url.ParseQuery(raw)
	require.NoError(t, err)
	q.Set("hash", strings.ToUpper(q.Get("hash")))

	_, err = v.Verify(context.Background(), q.Encode())
	assert.True(t, httperr.IsBusiness(err, CodeReplayedInitData))
}

func TestVerifier_GuardOutlivesPayload(t *testing.T) {
	authDate := time.Unix(1_760_000_000, 0)
	now := authDate
	clock := func() time.Time { return now }

	guard := newMemoryGuard(clock)
	v := NewVerifier(botToken, 24*time.Hour, guard, 10*time.Minute)
	v.now = clock

	raw := signedInitData(t, authDate)
	_, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Greater(t, guard.ttls[0], 24*time.Hour-time.Minute)

	now = authDate.Add(11 * time.Minute)
	_, err = v.Verify(context.Background(), raw)
	assert.True(t, httperr.IsBusiness(err, CodeReplayedInitData))

	now = authDate.Add(23 * time.Hour)
	_, err = v.Verify(context.Background(), raw)
	assert.True(t, httperr.IsBusiness(err, CodeReplayedInitData))
}

func TestVerifier_ClaimTTL(t *testing.T) {
	authDate := time.Unix(1_760_000_000, 0)

	v := NewVerifier(botToken, time.Hour, nil, 10*time.Minute)
	assert.Equal(t, time.Hour+time.Second, v.claimTTL(authDate, authDate))
	assert.Equal(t, 10*time.Minute, v.claimTTL(authDate, authDate.Add(55*time.Minute)))

	v = NewVerifier(botToken, 0, nil, 10*time.Minute)
	assert.Equal(t, 10*time.Minute, v.claimTTL(authDate, authDate))
}
