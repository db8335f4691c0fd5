// Package video issues access tokens for the external video-call provider.
// Tokens are HS256 JWTs carrying an identity and a room grant, the format
// Twilio-style providers accept.
package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/dkeye/mazetown/internal/domain"
	"github.com/google/uuid"
)

const defaultTTL = 4 * time.Hour

var (
	ErrNotConfigured = errors.New("video provider credentials missing")
	ErrInvalidToken  = errors.New("invalid video token")
)

type Config struct {
	APIKey    string
	APISecret string
	TTL       time.Duration
}

type videoGrant struct {
	Room string `json:"room"`
}

type grants struct {
	Identity string     `json:"identity"`
	Video    videoGrant `json:"video"`
}

type accessClaims struct {
	Grants grants `json:"grants"`
	jwt.StandardClaims
}

// TokenIssuer implements core.VideoClient.
type TokenIssuer struct {
	apiKey string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg Config) (*TokenIssuer, error) {
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, ErrNotConfigured
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &TokenIssuer{
		apiKey: cfg.APIKey,
		secret: []byte(cfg.APISecret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// AccessToken grants playerID access to the video room named after townID.
func (i *TokenIssuer) AccessToken(ctx context.Context, townID domain.TownID, playerID domain.PlayerID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	now := i.now()
	claims := accessClaims{
		Grants: grants{
			Identity: string(playerID),
			Video:    videoGrant{Room: string(townID)},
		},
		StandardClaims: jwt.StandardClaims{
			Id:        i.apiKey + "-" + uuid.NewString(),
			Issuer:    i.apiKey,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(i.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["cty"] = "twilio-fpa;v=1"
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign video token: %w", err)
	}
	return signed, nil
}

// verify checks a token issued by i and returns the room and identity it grants.
func (i *TokenIssuer) verify(tokenStr string) (domain.TownID, domain.PlayerID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid || claims.Issuer != i.apiKey {
		return "", "", ErrInvalidToken
	}
	return domain.TownID(claims.Grants.Video.Room), domain.PlayerID(claims.Grants.Identity), nil
}
