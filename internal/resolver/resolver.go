// Package resolver turns a validated profile name into a credential
// set, orchestrating the gpg-agent gate and the secret store with
// bounded retries and an expiration check.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	awserrors "github.com/systmms/awspass/internal/errors"
	"github.com/systmms/awspass/internal/gpg"
	"github.com/systmms/awspass/internal/logging"
	"github.com/systmms/awspass/internal/secure"
	"github.com/systmms/awspass/internal/store"
)

// Logical field names under <prefix>/<profile>/.
const (
	fieldAccessKeyID     = "access-key-id"
	fieldSecretAccessKey = "secret-access-key"
	fieldSessionToken    = "session-token"
	fieldExpiration      = "expiration"
)

// Access key shapes recognized for the non-fatal format diagnostic.
var (
	iamKeyPattern     = regexp.MustCompile(`^AKIA[A-Z0-9]{16}$`)
	stsKeyPattern     = regexp.MustCompile(`^ASIA[A-Z0-9]{16}$`)
	genericKeyPattern = regexp.MustCompile(`^[A-Z0-9]{16,128}$`)
)

// CredentialSet is the resolved bundle handed to the formatter. The
// secret key and session token stay sealed until output time.
type CredentialSet struct {
	AccessKeyID     string
	SecretAccessKey *secure.Value
	SessionToken    *secure.Value // nil when the profile has no token
	Expiration      *time.Time    // nil when no expiration entry exists
}

// Destroy releases the sealed values. Idempotent.
func (c *CredentialSet) Destroy() {
	if c.SecretAccessKey != nil {
		c.SecretAccessKey.Destroy()
	}
	if c.SessionToken != nil {
		c.SessionToken.Destroy()
	}
}

// Options tunes retry behavior and time handling. Zero values take
// working defaults; tests inject zero delay and a fixed clock.
type Options struct {
	Prefix        string
	RetryAttempts int
	RetryDelay    time.Duration
	Now           func() time.Time
	Sleep         func(time.Duration)
}

// Resolver orchestrates the authentication gate and the secret store.
type Resolver struct {
	store  store.Store
	gate   gpg.Gate
	logger *logging.Logger
	opts   Options
}

// New creates a resolver.
func New(st store.Store, gate gpg.Gate, logger *logging.Logger, opts Options) *Resolver {
	if opts.Prefix == "" {
		opts.Prefix = "aws"
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = 3
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Resolver{store: st, gate: gate, logger: logger, opts: opts}
}

// Resolve runs the full resolution sequence for a validated profile.
// Any returned error is already classified for the wire.
func (r *Resolver) Resolve(ctx context.Context, profile string) (*CredentialSet, error) {
	r.logger.RedactLiteral(path.Join(r.opts.Prefix, profile))

	if err := r.gate.EnsureReady(ctx); err != nil {
		return nil, err
	}

	// Both required entries must exist before anything is decrypted;
	// retrying an existence check would not make an entry appear.
	for _, field := range []string{fieldAccessKeyID, fieldSecretAccessKey} {
		if !r.store.Exists(ctx, r.entryPath(profile, field)) {
			return nil, awserrors.CredentialError{
				Code:       awserrors.CodeCredentialNotFound,
				Message:    fmt.Sprintf("no %s entry for profile %q", field, profile),
				Suggestion: fmt.Sprintf("store it with: pass insert %s", r.entryPath(profile, field)),
			}
		}
	}

	expiration, err := r.checkExpiration(ctx, profile)
	if err != nil {
		return nil, err
	}

	accessKey, err := r.fetchRequired(ctx, profile, fieldAccessKeyID)
	if err != nil {
		return nil, err
	}
	secretKey, err := r.fetchRequired(ctx, profile, fieldSecretAccessKey)
	if err != nil {
		return nil, err
	}

	r.inspectAccessKeyFormat(accessKey)

	set := &CredentialSet{
		AccessKeyID:     accessKey,
		SecretAccessKey: secure.NewValue(secretKey),
		Expiration:      expiration,
	}

	if token := r.fetchOptional(ctx, profile, fieldSessionToken); token != "" {
		set.SessionToken = secure.NewValue(token)
	}

	return set, nil
}

// checkExpiration fetches and parses the optional expiration entry.
// A missing or unparseable entry imposes no constraint; a timestamp in
// the past fails the resolution before any credential is decrypted.
func (r *Resolver) checkExpiration(ctx context.Context, profile string) (*time.Time, error) {
	entry := r.entryPath(profile, fieldExpiration)
	if !r.store.Exists(ctx, entry) {
		return nil, nil
	}

	raw, err := r.store.Fetch(ctx, entry)
	if err != nil {
		r.logger.Debug("could not read expiration entry: %v", err)
		return nil, nil
	}

	expiry, ok := parseExpiration(raw)
	if !ok {
		r.logger.Debug("unparseable expiration entry, proceeding without constraint")
		return nil, nil
	}

	if expiry.Before(r.opts.Now()) {
		return nil, awserrors.CredentialError{
			Code:       awserrors.CodeExpiredCredentials,
			Message:    fmt.Sprintf("credentials for profile %q expired at %s", profile, expiry.Format(time.RFC3339)),
			Suggestion: "rotate the credentials and update the expiration entry",
		}
	}
	return &expiry, nil
}

// fetchRequired retrieves a required field with bounded retries. The
// decryption backend may be gated on a hardware-token touch, so a
// transient miss is retried after a delay rather than failing the
// invocation outright.
func (r *Resolver) fetchRequired(ctx context.Context, profile, field string) (string, error) {
	entry := r.entryPath(profile, field)

	var lastErr error
	lastEmpty := false
	for attempt := 1; attempt <= r.opts.RetryAttempts; attempt++ {
		value, err := r.store.Fetch(ctx, entry)
		switch {
		case err == nil && strings.TrimSpace(value) != "":
			return strings.TrimSpace(value), nil
		case err == nil:
			lastEmpty = true
			lastErr = nil
			r.logger.Debug("%s fetch returned empty value (attempt %d/%d)", field, attempt, r.opts.RetryAttempts)
		default:
			// Classified fatal errors will not improve with retries.
			var ce awserrors.CredentialError
			if errors.As(err, &ce) {
				switch ce.Code {
				case awserrors.CodeNotInitialized, awserrors.CodeDependency:
					return "", err
				}
			}
			lastEmpty = false
			lastErr = err
			r.logger.Debug("%s fetch failed (attempt %d/%d): %v", field, attempt, r.opts.RetryAttempts, err)
		}

		if attempt < r.opts.RetryAttempts {
			r.opts.Sleep(r.opts.RetryDelay)
		}
	}

	if lastEmpty {
		// The store answered but with no content; more attempts would
		// not repair a data problem.
		return "", awserrors.CredentialError{
			Code:       awserrors.CodeEmptyCredential,
			Message:    fmt.Sprintf("%s for profile %q is empty", field, profile),
			Suggestion: fmt.Sprintf("re-insert the entry: pass insert %s", entry),
		}
	}
	return "", awserrors.CredentialError{
		Code:       awserrors.CodeRetrieval,
		Message:    fmt.Sprintf("failed to retrieve %s for profile %q after %d attempts", field, profile, r.opts.RetryAttempts),
		Suggestion: "check gpg-agent and try again; a hardware token may need a touch per decryption",
		Err:        lastErr,
	}
}

// fetchOptional returns the value of an optional field, or empty when
// the entry is absent or unreadable. No retries; absence is normal.
func (r *Resolver) fetchOptional(ctx context.Context, profile, field string) string {
	entry := r.entryPath(profile, field)
	if !r.store.Exists(ctx, entry) {
		return ""
	}
	value, err := r.store.Fetch(ctx, entry)
	if err != nil {
		r.logger.Debug("optional %s fetch failed: %v", field, err)
		return ""
	}
	return strings.TrimSpace(value)
}

// inspectAccessKeyFormat notes unrecognized key shapes for diagnosis.
// Format conventions change; a mismatch never fails the resolution.
func (r *Resolver) inspectAccessKeyFormat(key string) {
	switch {
	case iamKeyPattern.MatchString(key):
		r.logger.Debug("access key has IAM user format")
	case stsKeyPattern.MatchString(key):
		r.logger.Debug("access key has STS session format")
	case genericKeyPattern.MatchString(key):
		r.logger.Debug("access key has generic uppercase-alphanumeric format")
	default:
		r.logger.Debug("access key %s does not match any recognized format", logging.MaskValue(key))
	}
}

func (r *Resolver) entryPath(profile, field string) string {
	return path.Join(r.opts.Prefix, profile, field)
}

// parseExpiration accepts the timestamp layouts that show up in
// hand-maintained store entries.
func parseExpiration(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	// Unix epoch seconds.
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0), true
	}

	return time.Time{}, false
}
