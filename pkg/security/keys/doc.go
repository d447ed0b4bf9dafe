// Package keys supplies the symmetric key that protects user files.
//
// Two providers are available. EnvProvider decodes the key from an
// environment variable. FileProvider reads it from a file that must be
// readable by its owner only (0600 or 0400) and can watch the file for
// rotation with fsnotify.
//
// Keys are given hex or base64 encoded and must decode to 16, 24 or 32
// bytes, selecting AES-128, AES-192 or AES-256.
//
//	provider, err := keys.New(cfg.Keys, logger)
//	if err != nil {
//		return err
//	}
//	defer provider.Close()
//	doc, err := files.ReadDocument(files.KindUsers, r, files.ReadOptions{Keys: provider})
package keys
