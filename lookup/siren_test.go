package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-onboarding-server/lookup"
)

func TestValidSIREN(t *testing.T) {
	t.Run("valid identifiers", func(t *testing.T) {
		for _, siren := range []string{"552100554", "443061841", "552032534", "732829320", "404833048"} {
			require.True(t, lookup.ValidSIREN(siren), siren)
		}
	})

	t.Run("checksum failures", func(t *testing.T) {
		for _, siren := range []string{"123456789", "812345674", "552100555"} {
			require.False(t, lookup.ValidSIREN(siren), siren)
		}
	})

	t.Run("malformed identifiers", func(t *testing.T) {
		for _, siren := range []string{"", "55210055", "5521005541", "55210055a", "552 10055"} {
			require.False(t, lookup.ValidSIREN(siren), siren)
		}
	})
}

func TestValidateLogoFile(t *testing.T) {
	valid := lookup.LogoFile{
		Name:        "logo.png",
		ContentType: "image/png",
		SizeBytes:   1024,
	}

	t.Run("accepts a well-formed file", func(t *testing.T) {
		require.NoError(t, lookup.ValidateLogoFile(valid))
	})

	t.Run("rejects missing name", func(t *testing.T) {
		file := valid
		file.Name = "  "
		require.Error(t, lookup.ValidateLogoFile(file))
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		file := valid
		file.ContentType = "application/pdf"
		err := lookup.ValidateLogoFile(file)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported logo type")
	})

	t.Run("rejects empty file", func(t *testing.T) {
		file := valid
		file.SizeBytes = 0
		require.Error(t, lookup.ValidateLogoFile(file))
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		file := valid
		file.SizeBytes = 3 << 20
		err := lookup.ValidateLogoFile(file)
		require.Error(t, err)
		require.Contains(t, err.Error(), "byte limit")
	})
}
