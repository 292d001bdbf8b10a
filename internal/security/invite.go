package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// inviteTokenBytes yields 256 bits of entropy, encoded as 64 hex characters.
const inviteTokenBytes = 32

// InviteTokenGenerator produces the unguessable, single-use secrets embedded
// in invitation links. Each call returns a fresh value; tokens are never
// reused across invitations or resends.
type InviteTokenGenerator interface {
	Generate() (string, error)
}

type inviteTokenGenerator struct{}

func NewInviteTokenGenerator() InviteTokenGenerator {
	return &inviteTokenGenerator{}
}

func (g *inviteTokenGenerator) Generate() (string, error) {
	buf := make([]byte, inviteTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invitation token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IDGenerator is the single injected source of entity identifiers. Services
// receive it as a dependency rather than minting IDs at call sites.
type IDGenerator interface {
	NewID() string
}

type uuidGenerator struct{}

func NewIDGenerator() IDGenerator {
	return &uuidGenerator{}
}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}
