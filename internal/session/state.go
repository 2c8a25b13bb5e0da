// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session keys. keyLegacyToken is the differently-named key an earlier
// client stored the credential under; SignOut clears it alongside keyToken
// so a stale copy can never outlive a logout.
const (
	keyToken       = "token"
	keyLegacyToken = "auth_token"
	keyUsername    = "username"
	keyCollapsed   = "sidebar_collapsed"
	keyOpenSection = "nav_open_sections"
)

// State wraps a session manager with typed accessors for the auth state.
// Handlers receive the token through this single access point instead of
// ad-hoc storage lookups.
type State struct {
	sm *scs.SessionManager
}

// NewState returns a State backed by the given session manager.
func NewState(sm *scs.SessionManager) *State {
	return &State{sm: sm}
}

// Manager exposes the underlying scs manager for middleware wiring.
func (s *State) Manager() *scs.SessionManager {
	return s.sm
}

// SignIn stores the bearer token and username for the remainder of the
// session. The session token is renewed first to prevent fixation; the last
// login wins for the browser profile.
func (s *State) SignIn(ctx context.Context, token, username string) error {
	if err := s.sm.RenewToken(ctx); err != nil {
		return err
	}
	s.sm.Put(ctx, keyToken, token)
	s.sm.Put(ctx, keyUsername, username)
	// Fresh sign-in resets per-session UI state (remount semantics).
	s.sm.Remove(ctx, keyCollapsed)
	s.sm.Remove(ctx, keyOpenSection)
	return nil
}

// SignOut removes the token, the legacy token key, and the username, then
// destroys the session. Local state is always cleared; the remote
// invalidation call is the caller's (best-effort) concern.
func (s *State) SignOut(ctx context.Context) error {
	s.sm.Remove(ctx, keyToken)
	s.sm.Remove(ctx, keyLegacyToken)
	s.sm.Remove(ctx, keyUsername)
	return s.sm.Destroy(ctx)
}

// Token returns the bearer token, or "" when the session is unauthenticated.
func (s *State) Token(ctx context.Context) string {
	return s.sm.GetString(ctx, keyToken)
}

// Username returns the signed-in username, or "" when unset. Falls back to
// the token's subject claim when the stored name is empty.
func (s *State) Username(ctx context.Context) string {
	if name := s.sm.GetString(ctx, keyUsername); name != "" {
		return name
	}
	if sub, ok := peekClaim(s.Token(ctx), "sub"); ok {
		return sub
	}
	return ""
}

// IsAuthenticated reports whether the session carries a token.
func (s *State) IsAuthenticated(ctx context.Context) bool {
	return s.Token(ctx) != ""
}

// TokenExpiry returns the bearer token's expiry claim for display. The
// token is issued and verified by the remote auth service; the console only
// peeks at the claims, it never validates the signature.
func (s *State) TokenExpiry(ctx context.Context) (time.Time, bool) {
	tok := s.Token(ctx)
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// SidebarCollapsed reports the per-session sidebar collapse flag.
func (s *State) SidebarCollapsed(ctx context.Context) bool {
	return s.sm.GetBool(ctx, keyCollapsed)
}

// ToggleSidebar flips the sidebar collapse flag and returns the new value.
func (s *State) ToggleSidebar(ctx context.Context) bool {
	collapsed := !s.sm.GetBool(ctx, keyCollapsed)
	s.sm.Put(ctx, keyCollapsed, collapsed)
	return collapsed
}

// OpenSections returns the set of expanded sidebar section IDs. Each section
// has an independent flag; the map is copied so callers cannot mutate the
// stored value in place.
func (s *State) OpenSections(ctx context.Context) map[string]bool {
	open := map[string]bool{}
	raw, ok := s.sm.Get(ctx, keyOpenSection).([]string)
	if !ok {
		return open
	}
	for _, id := range raw {
		open[id] = true
	}
	return open
}

// ToggleSection flips one sidebar section's disclosure flag without touching
// the other sections.
func (s *State) ToggleSection(ctx context.Context, id string) {
	open := s.OpenSections(ctx)
	if open[id] {
		delete(open, id)
	} else {
		open[id] = true
	}
	ids := make([]string, 0, len(open))
	for k := range open {
		ids = append(ids, k)
	}
	s.sm.Put(ctx, keyOpenSection, ids)
}

// peekClaim reads one string claim from an unverified JWT.
func peekClaim(token, name string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}
	v, ok := claims[name].(string)
	return v, ok && v != ""
}
