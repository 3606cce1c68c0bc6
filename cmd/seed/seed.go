package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"

	apperrors "blogsphere/internal/errors"
	"blogsphere/internal/logger"
	"blogsphere/internal/model"
	"blogsphere/internal/service"
)

//go:embed fixture.json
var defaultFixture []byte

// Fixture is the demo dataset.
type Fixture struct {
	Users   []SeedUser   `json:"users"`
	Follows []SeedFollow `json:"follows"`
}

// SeedUser is a user with the blogs they wrote.
type SeedUser struct {
	Email       string     `json:"email"`
	Password    string     `json:"password"`
	UserName    string     `json:"userName"`
	Description string     `json:"description"`
	Blogs       []SeedBlog `json:"blogs"`
}

// SeedBlog is a blog in the fixture.
type SeedBlog struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// SeedFollow is a follow edge between two fixture users, by email.
type SeedFollow struct {
	Follower string `json:"follower"`
	Followee string `json:"followee"`
}

// Summary counts what a run changed.
type Summary struct {
	UsersCreated  int
	UsersExisting int
	Blogs         int
	Follows       int
}

// loadFixture reads the fixture from an http(s) URL, a file path, or the embedded default.
func loadFixture(ctx context.Context, source string) (*Fixture, error) {
	var raw []byte
	switch {
	case source == "":
		raw = defaultFixture
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		b, err := fetchFixture(ctx, source)
		if err != nil {
			return nil, err
		}
		raw = b
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		raw = b
	}

	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &f, nil
}

func fetchFixture(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture source returned status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// Seeder writes a fixture through the service layer so every invariant the API
// enforces (hashing, codes, counters, notifications) holds for seeded data too.
type Seeder struct {
	Auth    service.AuthService
	Users   service.UserService
	Blogs   service.BlogService
	Follows service.FollowService
	Lookup  func(ctx context.Context, email string) (*model.User, error)
	Log     *logger.Logger
}

// Run is idempotent for users: existing emails are reused and their blogs are not duplicated.
func (s *Seeder) Run(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	ids := make(map[string]uuid.UUID, len(f.Users))

	for _, u := range f.Users {
		user, err := s.Auth.Signup(ctx, u.Email, u.Password, u.UserName)
		switch {
		case err == nil:
			sum.UsersCreated++
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			sum.UsersExisting++
			existing, lookupErr := s.Lookup(ctx, strings.ToLower(u.Email))
			if lookupErr != nil {
				return sum, fmt.Errorf("error loading user %s: %w", u.Email, lookupErr)
			}
			ids[strings.ToLower(u.Email)] = existing.ID
			s.Log.Info("user exists, skipping", "email", u.Email)
			continue
		default:
			return sum, fmt.Errorf("error creating user %s: %w", u.Email, err)
		}
		ids[strings.ToLower(u.Email)] = user.ID

		if u.Description != "" {
			desc := u.Description
			if _, err := s.Users.UpdateProfile(ctx, user.ID, model.ProfilePatch{Description: &desc}); err != nil {
				return sum, fmt.Errorf("error updating profile %s: %w", u.Email, err)
			}
		}

		for _, b := range u.Blogs {
			if _, err := s.Blogs.Create(ctx, user.ID, service.BlogInput{Title: b.Title, Content: b.Content, Tags: b.Tags}); err != nil {
				return sum, fmt.Errorf("error creating blog %q: %w", b.Title, err)
			}
			sum.Blogs++
		}
	}

	for _, edge := range f.Follows {
		follower, ok1 := ids[strings.ToLower(edge.Follower)]
		followee, ok2 := ids[strings.ToLower(edge.Followee)]
		if !ok1 || !ok2 {
			s.Log.Warn("follow references unknown user", "follower", edge.Follower, "followee", edge.Followee)
			continue
		}
		err := s.Follows.Follow(ctx, follower, followee)
		if errors.Is(err, apperrors.ErrAlreadyFollowing) {
			continue
		}
		if err != nil {
			return sum, fmt.Errorf("error following %s -> %s: %w", edge.Follower, edge.Followee, err)
		}
		sum.Follows++
	}
	return sum, nil
}
