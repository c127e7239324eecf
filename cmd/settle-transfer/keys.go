package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v3"

	"github.com/chainsafe/settle-rebalancer/pkg/keys"
)

// privateKeyEnv holds the hex signing key read by -encrypt-key.
const privateKeyEnv = "SETTLE_PRIVATE_KEY"

type signerSnippet struct {
	Signer struct {
		EncryptedPrivateKey string `yaml:"encrypted_private_key"`
		MasterKeyEnv        string `yaml:"master_key_env"`
	} `yaml:"signer"`
}

// encryptKey encrypts the key in SETTLE_PRIVATE_KEY under the master key in
// masterKeyEnv and writes the signer config block to w. When masterKeyEnv is
// unset a new master key is generated and written as a comment; it is not
// stored anywhere else.
func encryptKey(w io.Writer, masterKeyEnv string, getenv func(string) string) error {
	hexKey := strings.TrimPrefix(strings.TrimSpace(getenv(privateKeyEnv)), "0x")
	if hexKey == "" {
		return fmt.Errorf("%s is not set", privateKeyEnv)
	}
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", privateKeyEnv, err)
	}

	var masterKey []byte
	generated := false
	if encoded := getenv(masterKeyEnv); encoded != "" {
		if masterKey, err = keys.MasterKeyFromBase64(encoded); err != nil {
			return fmt.Errorf("failed to read master key from %s: %w", masterKeyEnv, err)
		}
	} else {
		if masterKey, err = keys.GenerateMasterKey(); err != nil {
			return err
		}
		generated = true
	}

	blob, err := keys.EncryptPrivateKey(crypto.FromECDSA(key), masterKey)
	if err != nil {
		return err
	}

	var snippet signerSnippet
	snippet.Signer.EncryptedPrivateKey = blob
	snippet.Signer.MasterKeyEnv = masterKeyEnv
	out, err := yaml.Marshal(&snippet)
	if err != nil {
		return fmt.Errorf("failed to render signer config: %w", err)
	}

	fmt.Fprintf(w, "# signer address %s\n", crypto.PubkeyToAddress(key.PublicKey).Hex())
	if generated {
		fmt.Fprintf(w, "# generated master key, export it as %s:\n# %s\n", masterKeyEnv, keys.MasterKeyToBase64(masterKey))
	}
	_, err = w.Write(out)
	return err
}
