package files

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// SectionUsers holds the user list.
const SectionUsers = "USER_SECTION"

// encryptedMagic starts every encrypted file, followed by the nonce and
// the sealed plain stream.
var encryptedMagic = []byte("SIMDXF-AESGCM-1\n")

var (
	// ErrNoKey is returned when an encrypted kind is used without a key provider.
	ErrNoKey = errors.New("no key provider configured")

	// ErrDecrypt is returned when a file cannot be decrypted with the
	// supplied key. The file is either damaged or the key is wrong.
	ErrDecrypt = errors.New("cannot decrypt file")
)

// KeyProvider supplies the AES key of encrypted file kinds.
type KeyProvider interface {
	// Key returns a key of 16, 24 or 32 bytes.
	Key() ([]byte, error)
}

// UserData is the content of a user file.
type UserData struct {
	Users []*model.User
}

// EncryptedFormat is a Format whose whole stream is sealed with AES-GCM.
type EncryptedFormat[D any] struct {
	plain *Format[D]
}

// Users reads and writes .usrdxf files.
var Users = &EncryptedFormat[UserData]{
	plain: &Format[UserData]{
		kind: KindUsers,
		sections: []section[UserData]{
			listSection(SectionUsers, descriptor.Codec[*model.User](entities.User),
				func(d *UserData) *[]*model.User { return &d.Users }),
		},
	},
}

// Kind returns the file kind.
func (f *EncryptedFormat[D]) Kind() Kind { return f.plain.kind }

// Write encrypts d with the key of opts.Keys.
func (f *EncryptedFormat[D]) Write(w io.Writer, d *D, opts WriteOptions) error {
	start := time.Now()
	var written int64
	err := func() error {
		aead, err := newAEAD(opts.Keys, opts.FileName)
		if err != nil {
			return err
		}
		inner := opts
		inner.Observer = nil
		var buf bytes.Buffer
		if err := f.plain.Write(&buf, d, inner); err != nil {
			return err
		}

		nonce := make([]byte, aead.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return dxferrors.NewIOError("encrypt", opts.FileName, err)
		}
		out := make([]byte, 0, len(encryptedMagic)+len(nonce)+buf.Len()+aead.Overhead())
		out = append(out, encryptedMagic...)
		out = append(out, nonce...)
		out = aead.Seal(out, nonce, buf.Bytes(), []byte(f.plain.kind.Extension()))

		n, err := w.Write(out)
		written = int64(n)
		if err != nil {
			return dxferrors.NewIOError("write", opts.FileName, err)
		}
		return nil
	}()
	if opts.Observer != nil {
		opts.Observer.ObserveWrite(WriteStats{
			Kind:     f.plain.kind,
			File:     opts.FileName,
			Bytes:    written,
			Duration: time.Since(start),
			Err:      err,
		})
	}
	return err
}

// Read decrypts the stream with the key of opts.Keys and reads it.
func (f *EncryptedFormat[D]) Read(r io.Reader, opts ReadOptions) (*Result[D], error) {
	plain, err := f.open(r, opts)
	if err != nil {
		if opts.Observer != nil {
			opts.Observer.ObserveRead(ReadStats{Kind: f.plain.kind, File: opts.FileName, Err: err})
		}
		opts.logger(f.plain.kind).Error("read failed", "error", err)
		return nil, err
	}
	return f.plain.Read(bytes.NewReader(plain), opts)
}

func (f *EncryptedFormat[D]) open(r io.Reader, opts ReadOptions) ([]byte, error) {
	aead, err := newAEAD(opts.Keys, opts.FileName)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, dxferrors.NewIOError("read", opts.FileName, err)
	}
	header := len(encryptedMagic) + aead.NonceSize()
	if len(data) < header+aead.Overhead() || !bytes.Equal(data[:len(encryptedMagic)], encryptedMagic) {
		return nil, dxferrors.NewIOError("decrypt", opts.FileName, ErrDecrypt)
	}
	nonce := data[len(encryptedMagic):header]
	plain, err := aead.Open(nil, nonce, data[header:], []byte(f.plain.kind.Extension()))
	if err != nil {
		return nil, dxferrors.NewIOError("decrypt", opts.FileName, ErrDecrypt)
	}
	return plain, nil
}

func newAEAD(keys KeyProvider, file string) (cipher.AEAD, error) {
	if keys == nil {
		return nil, dxferrors.NewIOError("key", file, ErrNoKey)
	}
	key, err := keys.Key()
	if err != nil {
		return nil, dxferrors.NewIOError("key", file, err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, dxferrors.NewIOError("key", file, fmt.Errorf("invalid key: %w", err))
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, dxferrors.NewIOError("key", file, err)
	}
	return aead, nil
}

// StaticKey is a KeyProvider for a fixed key.
type StaticKey []byte

// Key implements KeyProvider.
func (k StaticKey) Key() ([]byte, error) {
	if len(k) == 0 {
		return nil, ErrNoKey
	}
	return k, nil
}
