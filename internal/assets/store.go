// Package assets stores the binary attachments of catalog records.
//
// Records keep only the storage key (Ref) of an asset, for example
// "images/0b7c...e1.png". The key is turned into a public URL by a
// URLResolver when the record is serialized.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultNamespace = "images"
	DefaultMaxBytes  = 2 << 20 // 2 MiB
)

// AllowedTypes are the accepted image content types, detected from content.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

// Ref is the opaque storage key of an asset.
type Ref string

// String returns the key
func (r Ref) String() string {
	return string(r)
}

// External reports whether the ref is an absolute URL the store does not own.
func (r Ref) External() bool {
	return strings.HasPrefix(string(r), "http://") || strings.HasPrefix(string(r), "https://")
}

// Upload is a file received from a client.
type Upload struct {
	Filename string
	// DeclaredType is the client-supplied content type; it is logged but not trusted.
	DeclaredType string
	Data         []byte
}

// ReadUpload reads at most limit+1 bytes from r so oversize input is
// detected without buffering all of it.
func ReadUpload(r io.Reader, filename, declaredType string, limit int64) (Upload, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Upload{}, err
	}
	return Upload{Filename: filename, DeclaredType: declaredType, Data: data}, nil
}

// Backend is the raw key/value storage behind a Store.
type Backend interface {
	Write(ctx context.Context, key string, data []byte, contentType string) error
	Remove(ctx context.Context, key string) error
	Stat(ctx context.Context, key string) (bool, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MissingPolicy decides how Reclaim treats an asset that is already gone.
type MissingPolicy int

const (
	// MissingIsError reports an absent asset as NotFoundError.
	MissingIsError MissingPolicy = iota
	// MissingIsSuccess treats an absent asset as already reclaimed.
	MissingIsSuccess
)

// Store validates uploads and keeps them under a fixed namespace.
type Store struct {
	backend   Backend
	namespace string
	maxBytes  int64
	newName   func() string
}

type Option func(*Store)

func WithNamespace(ns string) Option {
	return func(s *Store) {
		if ns = strings.Trim(ns, "/"); ns != "" {
			s.namespace = ns
		}
	}
}

func WithMaxBytes(n int64) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		maxBytes:  DefaultMaxBytes,
		newName:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxBytes returns the upload size limit
func (s *Store) MaxBytes() int64 {
	return s.maxBytes
}

// Namespace returns the key prefix of stored assets
func (s *Store) Namespace() string {
	return s.namespace
}

// Check validates an upload and returns its detected content type.
func (s *Store) Check(up Upload) (*mimetype.MIME, error) {
	if len(up.Data) == 0 {
		return nil, &InvalidAssetError{Reason: "the file is empty"}
	}
	if int64(len(up.Data)) > s.maxBytes {
		return nil, &InvalidAssetError{Reason: fmt.Sprintf("the file must not be greater than %d kilobytes", s.maxBytes/1024)}
	}
	mt := mimetype.Detect(up.Data)
	for _, allowed := range AllowedTypes {
		if mt.Is(allowed) {
			return mt, nil
		}
	}
	return nil, &InvalidAssetError{Reason: fmt.Sprintf("the file must be of type jpeg, png, jpg or gif, got %s", mt.String())}
}

// Put stores the upload under a generated unique key.
func (s *Store) Put(ctx context.Context, up Upload) (Ref, error) {
	mt, err := s.Check(up)
	if err != nil {
		return "", err
	}
	ref := Ref(path.Join(s.namespace, s.newName()+mt.Extension()))
	if err := s.backend.Write(ctx, ref.String(), up.Data, mt.String()); err != nil {
		return "", &StoreError{Op: "put", Ref: ref, Err: err}
	}
	zap.L().Debug("asset stored",
		zap.String("ref", ref.String()),
		zap.String("content_type", mt.String()),
		zap.String("declared_type", up.DeclaredType),
		zap.Int("size", len(up.Data)))
	return ref, nil
}

// Exists reports whether ref names stored content.
func (s *Store) Exists(ctx context.Context, ref Ref) (bool, error) {
	if err := s.validRef(ref); err != nil {
		return false, nil
	}
	ok, err := s.backend.Stat(ctx, ref.String())
	if err != nil {
		return false, &StoreError{Op: "stat", Ref: ref, Err: err}
	}
	return ok, nil
}

// Delete removes the asset; a missing asset is a NotFoundError.
func (s *Store) Delete(ctx context.Context, ref Ref) error {
	ok, err := s.Exists(ctx, ref)
	if err != nil {
		return err
	}
	if !ok {
		return &NotFoundError{Ref: ref}
	}
	if err := s.backend.Remove(ctx, ref.String()); err != nil {
		return &StoreError{Op: "delete", Ref: ref, Err: err}
	}
	zap.L().Debug("asset deleted", zap.String("ref", ref.String()))
	return nil
}

// Reclaim deletes the asset, applying policy when it is already absent.
// External refs are left alone.
func (s *Store) Reclaim(ctx context.Context, ref Ref, policy MissingPolicy) error {
	if ref.External() {
		zap.L().Debug("external asset not reclaimed", zap.String("ref", ref.String()))
		return nil
	}
	err := s.Delete(ctx, ref)
	var nf *NotFoundError
	if policy == MissingIsSuccess && errors.As(err, &nf) {
		zap.L().Info("asset already absent", zap.String("ref", ref.String()))
		return nil
	}
	return err
}

// Open returns a reader over the stored content.
func (s *Store) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	ok, err := s.Exists(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &NotFoundError{Ref: ref}
	}
	rc, err := s.backend.Open(ctx, ref.String())
	if err != nil {
		return nil, &StoreError{Op: "open", Ref: ref, Err: err}
	}
	return rc, nil
}

// validRef accepts only keys inside the namespace without path tricks.
func (s *Store) validRef(ref Ref) error {
	key := ref.String()
	if !strings.HasPrefix(key, s.namespace+"/") || strings.Contains(key, "..") || path.Clean(key) != key {
		return fmt.Errorf("ref %q is outside namespace %q", key, s.namespace)
	}
	return nil
}
