package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind selects the scaffold written by Create.
type Kind string

const (
	// KindSchema writes empty up and down statement blocks.
	KindSchema Kind = "schema"
	// KindSeed writes a products insert with the matching delete for rollback.
	KindSeed Kind = "seed"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// clock is swapped in tests.
var clock = time.Now

const schemaScaffold = `-- +goose Up
-- +goose StatementBegin
-- %[1]s
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- revert %[1]s
-- +goose StatementEnd
`

const seedScaffold = `-- +goose Up
-- +goose StatementBegin
-- %[1]s: prices are dollars and must be positive
INSERT INTO products (id, name, unit_price, image_ref, sort_order) VALUES
    ('new-product', 'New Product', 1.00, 'images/new-product.jpg', 100);
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
DELETE FROM products WHERE id IN ('new-product');
-- +goose StatementEnd
`

// ParseKind reads a scaffold kind; empty means schema.
func ParseKind(raw string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(raw))) {
	case "", KindSchema:
		return KindSchema, nil
	case KindSeed:
		return KindSeed, nil
	default:
		return "", fmt.Errorf("unknown migration kind %q (want schema or seed)", raw)
	}
}

// Create writes a new catalog migration into dir and returns its path. The
// version is the current UTC time, bumped past the newest script already in
// dir so scripts always apply in creation order.
func Create(dir, name string, kind Kind) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("dir is required")
	}
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("name %q has no usable characters", name)
	}

	var scaffold string
	switch kind {
	case KindSchema:
		scaffold = schemaScaffold
	case KindSeed:
		scaffold = seedScaffold
	default:
		return "", fmt.Errorf("unknown migration kind %q", kind)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %q: %w", dir, err)
	}
	existing, err := ValidateDir(dir)
	if err != nil {
		return "", err
	}

	version, err := strconv.ParseInt(clock().UTC().Format(versionTemplate), 10, 64)
	if err != nil {
		return "", err
	}
	if latest := Latest(existing); version <= latest {
		version = latest + 1
	}

	target := filepath.Join(dir, fmt.Sprintf("%d_%s.sql", version, slug))
	if err := os.WriteFile(target, []byte(fmt.Sprintf(scaffold, slug)), 0o644); err != nil {
		return "", fmt.Errorf("write %q: %w", target, err)
	}
	return target, nil
}
