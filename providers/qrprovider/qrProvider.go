package qrprovider

import (
	"assetflow/providers"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

const publicPrefix = "/qrcodes/"

type FileQRProvider struct {
	dir  string
	size int
}

func NewFileQRProvider(dir string) providers.QRProvider {
	return &FileQRProvider{dir: dir, size: 256}
}

// Generate writes <dir>/<assetCode>-<uuid>.png and returns the public path served by the static
// file route. Each call gets its own file, so Remove never touches another asset's image.
func (p *FileQRProvider) Generate(ctx context.Context, assetCode, payload string) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create qr code directory")
	}
	name := fileSafe(assetCode) + "-" + uuid.NewString() + ".png"
	if err := qrcode.WriteFile(payload, qrcode.Medium, p.size, filepath.Join(p.dir, name)); err != nil {
		return "", errors.Wrap(err, "failed to write qr code")
	}
	return publicPrefix + name, nil
}

func (p *FileQRProvider) Remove(ctx context.Context, ref string) error {
	if !strings.HasPrefix(ref, publicPrefix) {
		return nil
	}
	err := os.Remove(filepath.Join(p.dir, filepath.Base(ref)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove qr code")
	}
	return nil
}

func fileSafe(code string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, code)
}
