package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for future algorithm migration.
const (
	DomainMachine = "ntm/machine/v1"
	DomainTape    = "ntm/tape/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// MachineHash computes the content-addressed identity of a transition list.
// Order matters: two lists with the same moves registered in a different
// order enumerate branches differently and hash differently.
func MachineHash(transitions []Transition) (string, error) {
	list := make([]any, len(transitions))
	for i, t := range transitions {
		list[i] = map[string]any{
			"from":  string(t.From),
			"read":  t.Read.String(),
			"to":    string(t.To),
			"write": t.Write.String(),
			"dir":   t.Dir.String(),
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"ir_version":  IRVersion,
		"transitions": list,
	})
	if err != nil {
		return "", fmt.Errorf("MachineHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainMachine, canonical), nil
}

// TapeHash computes the identity of an input tape.
func TapeHash(tape []Symbol) string {
	return hashWithDomain(DomainTape, []byte(TapeString(tape)))
}

// MustMachineHash is like MachineHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustMachineHash(transitions []Transition) string {
	h, err := MachineHash(transitions)
	if err != nil {
		panic(err)
	}
	return h
}
