package telegram

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/wellness-booking/internal/httperr"
)

const (
	CodeInvalidInitData  = "invalid_init_data"
	CodeExpiredInitData  = "expired_init_data"
	CodeReplayedInitData = "replayed_init_data"
)

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.Username
	}
	return name
}

// InitData is a verified payload. Hash is the lower-case hex signature.
type InitData struct {
	User     User
	AuthDate time.Time
	Hash     string
}

// ReplayGuard accepts each token once within ttl.
type ReplayGuard interface {
	Claim(ctx context.Context, token string, ttl time.Duration) (bool, error)
}

// secretKey derives the mini-app key: HMAC-SHA256("WebAppData", botToken).
func secretKey(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// dataCheckString joins every field but hash as sorted "key=value" lines.
func dataCheckString(values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}
	return strings.Join(lines, "\n")
}

// Sign computes the hash Telegram would attach to values.
func Sign(values url.Values, botToken string) string {
	mac := hmac.New(sha256.New, secretKey(botToken))
	mac.Write([]byte(dataCheckString(values)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Validate checks the signature and freshness of a raw initData query string.
// maxAge <= 0 disables the freshness check.
func Validate(raw, botToken string, maxAge time.Duration, now time.Time) (*InitData, error) {
	if botToken == "" {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "bot token not configured")
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "%v", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "missing hash")
	}

	expected := Sign(values, botToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(hash))) {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "bad hash")
	}

	ts, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "auth_date")
	}
	authDate := time.Unix(ts, 0)
	if maxAge > 0 && now.Sub(authDate) > maxAge {
		return nil, httperr.ErrBusiness(CodeExpiredInitData)
	}

	var user User
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil || user.ID == 0 {
		return nil, httperr.ErrBusinessf(CodeInvalidInitData, "user")
	}

	return &InitData{User: user, AuthDate: authDate, Hash: expected}, nil
}

// Verifier wraps Validate with replay protection.
type Verifier struct {
	botToken  string
	maxAge    time.Duration
	replay    ReplayGuard
	replayTTL time.Duration
	now       func() time.Time
}

func NewVerifier(botToken string, maxAge time.Duration, replay ReplayGuard, replayTTL time.Duration) *Verifier {
	return &Verifier{
		botToken:  botToken,
		maxAge:    maxAge,
		replay:    replay,
		replayTTL: replayTTL,
		now:       time.Now,
	}
}

func (v *Verifier) Verify(ctx context.Context, raw string) (*InitData, error) {
	now := v.now()
	data, err := Validate(raw, v.botToken, v.maxAge, now)
	if err != nil {
		return nil, err
	}

	if v.replay == nil {
		return data, nil
	}

	ok, err := v.replay.Claim(ctx, "tg:"+data.Hash, v.claimTTL(data.AuthDate, now))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(CodeReplayedInitData)
	}
	return data, nil
}

// claimTTL keeps the replay entry at least until the payload itself expires.
func (v *Verifier) claimTTL(authDate, now time.Time) time.Duration {
	ttl := v.replayTTL
	if v.maxAge <= 0 {
		return ttl
	}
	if left := authDate.Add(v.maxAge).Sub(now) + time.Second; left > ttl {
		ttl = left
	}
	return ttl
}
