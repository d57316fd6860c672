package contracts

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultArtifactPath is where the contract build output is expected relative to the working directory.
const DefaultArtifactPath = "../output/energy-factory.mxsc.json"

var ErrInvalidArtifact = errors.New("invalid contract artifact")

type mxscArtifact struct {
	BuildInfo struct {
		ContractCrate struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"contractCrate"`
	} `json:"buildInfo"`
	Code string `json:"code"`
}

// Artifact is compiled contract bytecode ready for deployment.
type Artifact struct {
	Name    string
	Version string
	Code    []byte
}

// LoadArtifact reads contract bytecode either from a *.mxsc.json build artifact
// (hex "code" field) or from a raw *.wasm file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract code: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: %s is empty", ErrInvalidArtifact, path)
		}
		return &Artifact{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), Code: data}, nil
	}
	return ParseArtifact(data)
}

func ParseArtifact(data []byte) (*Artifact, error) {
	var raw mxscArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if raw.Code == "" {
		return nil, fmt.Errorf("%w: missing code", ErrInvalidArtifact)
	}
	code, err := hex.DecodeString(strings.TrimPrefix(raw.Code, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: code is not hex: %w", ErrInvalidArtifact, err)
	}
	return &Artifact{
		Name:    raw.BuildInfo.ContractCrate.Name,
		Version: raw.BuildInfo.ContractCrate.Version,
		Code:    code,
	}, nil
}
