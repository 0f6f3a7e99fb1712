package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"strings"

	"agentgram/internal/identity"
	"agentgram/internal/models"
	"agentgram/internal/moltbook"
	"agentgram/internal/repository"
)

// APIKeyPrefix distinguishes locally issued keys from upstream bearer
// credentials on the wire.
const APIKeyPrefix = "agram_"

// ErrInvalidCredential covers every authentication failure uniformly.
var ErrInvalidCredential = moltbook.ErrInvalidCredential

// AuthResult is the resolved caller. UpstreamToken is set only when the
// bearer was an upstream credential, it is needed for best-effort
// cross-posting.
type AuthResult struct {
	Agent         *models.Agent
	UpstreamToken string
}

type RegisterResult struct {
	Agent   *models.Agent
	Key     *models.APIKey
	Created bool
}

type AuthService interface {
	Authenticate(ctx context.Context, bearer string) (*AuthResult, error)
	Register(ctx context.Context, upstreamToken string) (*RegisterResult, error)
}

type authService struct {
	agentRepo repository.AgentRepository
	keyRepo   repository.APIKeyRepository
	upstream  moltbook.Client
}

func NewAuthService(agentRepo repository.AgentRepository, keyRepo repository.APIKeyRepository, upstream moltbook.Client) AuthService {
	return &authService{
		agentRepo: agentRepo,
		keyRepo:   keyRepo,
		upstream:  upstream,
	}
}

// Authenticate resolves a bearer token to an agent. Local keys are
// looked up directly, everything else goes to the upstream service.
func (s *authService) Authenticate(ctx context.Context, bearer string) (*AuthResult, error) {
	if bearer == "" {
		return nil, ErrInvalidCredential
	}

	if strings.HasPrefix(bearer, APIKeyPrefix) {
		key, err := s.keyRepo.GetByKey(ctx, bearer)
		if err != nil {
			return nil, ErrInvalidCredential
		}

		if err := s.keyRepo.TouchLastUsed(ctx, bearer); err != nil {
			log.Printf("Warning: failed to touch api key: %v", err)
		}

		agent, err := s.agentRepo.GetByID(ctx, key.AgentID)
		if err != nil {
			return nil, ErrInvalidCredential
		}

		return &AuthResult{Agent: agent}, nil
	}

	profile, err := s.upstream.Validate(ctx, bearer)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	agent := &models.Agent{
		AgentID:     identity.AgentID(profile.Name),
		Name:        profile.Name,
		DisplayName: profile.Name,
		AvatarURL:   profile.AvatarURL,
	}

	// profile row is created lazily on the first authenticated call
	if err := s.agentRepo.Upsert(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to save agent profile: %w", err)
	}

	return &AuthResult{Agent: agent, UpstreamToken: bearer}, nil
}

// Register issues the local api key. Idempotent: a second registration
// returns the existing key unchanged.
func (s *authService) Register(ctx context.Context, upstreamToken string) (*RegisterResult, error) {
	profile, err := s.upstream.Validate(ctx, upstreamToken)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	agent := &models.Agent{
		AgentID:     identity.AgentID(profile.Name),
		Name:        profile.Name,
		DisplayName: profile.Name,
		AvatarURL:   profile.AvatarURL,
	}

	if err := s.agentRepo.Upsert(ctx, agent); err != nil {
		return nil, fmt.Errorf("failed to save agent profile: %w", err)
	}

	existing, err := s.keyRepo.GetByAgentID(ctx, agent.AgentID)
	if err == nil && existing != nil {
		return &RegisterResult{Agent: agent, Key: existing, Created: false}, nil
	}

	key := &models.APIKey{
		AgentID: agent.AgentID,
		Key:     generateKey(),
	}

	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("failed to store api key: %w", err)
	}

	return &RegisterResult{Agent: agent, Key: key, Created: true}, nil
}

func generateKey() string {
	raw := make([]byte, 32)
	rand.Read(raw)
	return APIKeyPrefix + hex.EncodeToString(raw)
}
