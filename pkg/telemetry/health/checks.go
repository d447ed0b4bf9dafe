package health

import (
	"context"
	"fmt"
	"os"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/files"
)

// Pinger is implemented by stores that can verify their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingCheck fails when the store cannot be reached.
func PingCheck(p Pinger) CheckFunc {
	return func(ctx context.Context) error {
		return p.Ping(ctx)
	}
}

// KeyCheck fails when the user file key cannot be loaded. The key itself
// never leaves the check.
func KeyCheck(k files.KeyProvider) CheckFunc {
	return func(context.Context) error {
		_, err := k.Key()
		return err
	}
}

// DirCheck fails when dir is missing or not a directory.
func DirCheck(dir string) CheckFunc {
	return func(context.Context) error {
		fi, err := os.Stat(dir)
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		return nil
	}
}
