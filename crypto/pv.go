package crypto

import (
	"fmt"
	"os"

	"github.com/cometbft/cometbft/crypto"
	"github.com/cometbft/cometbft/crypto/ed25519"
	cmtjson "github.com/cometbft/cometbft/libs/json"
	cmtos "github.com/cometbft/cometbft/libs/os"
	"github.com/cometbft/cometbft/privval"
)

// PV wraps a file-backed ed25519 key used to sign governance actions.
type PV struct {
	privateKey crypto.PrivKey
	publicKey  crypto.PubKey
}

func LoadFilePV(keyFilePath string) *PV {
	keyJSONBytes, err := os.ReadFile(keyFilePath)
	if err != nil {
		cmtos.Exit(err.Error())
	}
	pvKey := privval.FilePVKey{}
	err = cmtjson.Unmarshal(keyJSONBytes, &pvKey)
	if err != nil {
		cmtos.Exit(fmt.Sprintf("Error reading key from %v: %v\n", keyFilePath, err))
	}

	return &PV{
		privateKey: pvKey.PrivKey,
		publicKey:  pvKey.PubKey,
	}
}

// GenFilePV creates a fresh key and writes it to keyFilePath in the
// cometbft privval format. An existing key file is left untouched.
func GenFilePV(keyFilePath string) (*PV, error) {
	if cmtos.FileExists(keyFilePath) {
		return LoadFilePV(keyFilePath), nil
	}
	privKey := ed25519.GenPrivKey()
	pvKey := privval.FilePVKey{
		Address: privKey.PubKey().Address(),
		PubKey:  privKey.PubKey(),
		PrivKey: privKey,
	}
	jsonBytes, err := cmtjson.MarshalIndent(pvKey, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(keyFilePath, jsonBytes, 0o600); err != nil {
		return nil, err
	}
	return &PV{
		privateKey: pvKey.PrivKey,
		publicKey:  pvKey.PubKey,
	}, nil
}

func (k *PV) PublicKey() []byte {
	return k.publicKey.Bytes()
}

func (k *PV) Address() string {
	return k.publicKey.Address().String()
}

func (k *PV) Sign(data []byte) ([]byte, error) {
	return k.privateKey.Sign(data)
}
