package mnemonic

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestNew_WordCounts(t *testing.T) {
	for _, tc := range []struct {
		strength int
		words    int
	}{
		{0, 12}, // default
		{128, 12},
		{160, 15},
		{192, 18},
		{224, 21},
		{256, 24},
	} {
		mn, err := New(tc.strength)
		if err != nil {
			t.Fatalf("New(%d): %v", tc.strength, err)
		}
		if got := len(strings.Fields(mn)); got != tc.words {
			t.Errorf("New(%d) = %d words, want %d", tc.strength, got, tc.words)
		}
		if !Validate(mn) {
			t.Errorf("New(%d) produced an invalid mnemonic", tc.strength)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	is := is.New(t)

	a, err := New(128)
	is.NoErr(err)
	b, err := New(128)
	is.NoErr(err)
	is.True(a != b)
}

func TestValidate(t *testing.T) {
	is := is.New(t)

	is.True(Validate(testMnemonic))
	is.True(!Validate("abandon abandon abandon"))
	is.True(!Validate(""))
}

func TestDerive_KnownETHVector(t *testing.T) {
	is := is.New(t)

	accts, err := Derive(testMnemonic, "", 0, 1)
	is.NoErr(err)
	is.Equal(len(accts), 1)
	is.Equal(accts[0].Path, "m/44'/60'/0'/0/0")
	is.Equal(accts[0].Address, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94")
	is.Equal(accts[0].Index, 0)
}

func TestDerive_StartOffset(t *testing.T) {
	is := is.New(t)

	accts, err := Derive(testMnemonic, "", 3, 2)
	is.NoErr(err)
	is.Equal(len(accts), 2)
	is.Equal(accts[0].Index, 3)
	is.Equal(accts[0].Path, "m/44'/60'/0'/0/3")
	is.Equal(accts[1].Index, 4)
	is.True(accts[0].Address != accts[1].Address)
}
