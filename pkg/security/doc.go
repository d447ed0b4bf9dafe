// Package security groups the key handling of encrypted user files.
//
// Subpackage keys supplies the AES key of .sudxf files from the
// environment or from a key file:
//
//	provider, err := keys.New(cfg.Keys, logger)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	res, err := files.Users.Read(r, files.ReadOptions{Keys: provider})
package security
