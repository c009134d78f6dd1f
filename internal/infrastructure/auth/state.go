package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/gorilla/securecookie"
)

// StateCookieName é o cookie que guarda o state do fluxo OAuth
const StateCookieName = "oauth_state"

// StateTTL é a validade do state
const StateTTL = 10 * time.Minute

type statePayload struct {
	State    string
	Provider string
}

// StateCodec assina o state OAuth num cookie para validação no callback
type StateCodec struct {
	cookie *securecookie.SecureCookie
}

// NewStateCodec deriva a chave HMAC do segredo configurado
func NewStateCodec(secret string) *StateCodec {
	hashKey := sha256.Sum256([]byte(secret))
	cookie := securecookie.New(hashKey[:], nil)
	cookie.MaxAge(int(StateTTL.Seconds()))
	return &StateCodec{cookie: cookie}
}

// New gera um state aleatório e o valor assinado do cookie
func (c *StateCodec) New(provider string) (state string, cookieValue string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	state = base64.RawURLEncoding.EncodeToString(buf)

	cookieValue, err = c.cookie.Encode(StateCookieName, statePayload{State: state, Provider: provider})
	if err != nil {
		return "", "", err
	}
	return state, cookieValue, nil
}

// Verify confere o state devolvido pelo provedor com o cookie
func (c *StateCodec) Verify(cookieValue, state, provider string) bool {
	if cookieValue == "" || state == "" {
		return false
	}

	var payload statePayload
	if err := c.cookie.Decode(StateCookieName, cookieValue, &payload); err != nil {
		return false
	}
	if payload.Provider != provider {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(payload.State), []byte(state)) == 1
}
