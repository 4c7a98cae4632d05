package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"efixctl.dev/pkg/efixctl/internal/model"
	"efixctl.dev/pkg/efixctl/pkg/aixlevel"
)

func installedIndex(t *testing.T, levels map[string]string) *InstalledIndex {
	t.Helper()

	filesets := map[string]model.InstalledFileset{}

	for name, raw := range levels {
		level, err := aixlevel.Parse(raw)
		require.NoError(t, err)

		filesets[name] = model.InstalledFileset{Name: name, RawLevel: raw, Level: level}
	}

	return NewInstalledIndex(filesets, nil)
}

const sampleMetadata = `+-----------------------------------------------------------------------------+
LABEL:            IJ02726s8a
PACKAGING DATE:   Mon Oct  9 09:35:09 CDT 2017

   PACKAGE:       bos.net.tcp.client
   PACKAGE:       bos.net.tcp.client
   LOCATION:      /usr/sbin/tcpdump
   LOCATION:      /usr/lib/boot/unix_64
   LOCATION:      /usr/sbin/tcpdump

bos.net.tcp.client 7.1.3.0 7.1.3.49
`

func TestMetadataParser_Parse(t *testing.T) {
	index := installedIndex(t, map[string]string{"bos.net.tcp.client": "7.1.3.15"})
	parser := NewMetadataParser(index)

	candidate := parser.Parse("/tmp/IJ02726s8a.epkg", sampleMetadata)

	assert.False(t, candidate.Rejected)
	assert.Equal(t, "IJ02726s8a", candidate.Label)
	assert.Equal(t, "Mon Oct  9 09:35:09 CDT 2017", candidate.PackagingDate)
	assert.Equal(t, []string{"bos.net.tcp.client"}, candidate.Filesets, "duplicate PACKAGE lines collapse")
	assert.Equal(t, []string{"/usr/sbin/tcpdump", "/usr/lib/boot/unix_64"}, candidate.Files, "duplicate LOCATION lines collapse")

	require.Len(t, candidate.Prerequisites, 1)
	assert.Equal(t, "bos.net.tcp.client", candidate.Prerequisites[0].Fileset)
	assert.Equal(t, "7.1.3.0", candidate.Prerequisites[0].MinRaw)
	assert.Equal(t, "7.1.3.49", candidate.Prerequisites[0].MaxRaw)

	// CDT instant shifted to UTC.
	expectedEpoch := time.Date(2017, time.October, 9, 9, 35, 9, 0, time.UTC).Unix() + 5*3600
	assert.Equal(t, expectedEpoch, candidate.Epoch)
}

func TestMetadataParser_PrerequisiteMissing(t *testing.T) {
	index := installedIndex(t, map[string]string{})
	parser := NewMetadataParser(index)

	text := `LABEL:            IJ11111
   LOCATION:      /usr/lib/a

bos.rte 7.1.0.0 7.1.9.9
   LOCATION:      /usr/lib/after-reject
`
	candidate := parser.Parse("/tmp/IJ11111.epkg", text)

	assert.True(t, candidate.Rejected)
	assert.Equal(t, model.RejectPrereqMissing, candidate.RejectKind)
	assert.Equal(t, "IJ11111: prerequisite missing: bos.rte", candidate.RejectReason)
	assert.Equal(t, []string{"/usr/lib/a"}, candidate.Files, "scan stops at the failing constraint")
}

func TestMetadataParser_PrerequisiteOutOfRange(t *testing.T) {
	index := installedIndex(t, map[string]string{"bos.rte": "7.1.3.0"})
	parser := NewMetadataParser(index)

	text := `LABEL:            IJ22222

bos.rte 7.1.3.10 7.1.3.99
`
	candidate := parser.Parse("/tmp/IJ22222.epkg", text)

	assert.True(t, candidate.Rejected)
	assert.Equal(t, model.RejectPrereqOutOfRange, candidate.RejectKind)
	assert.Equal(t,
		"IJ22222: prerequisite bos.rte levels do not satisfy condition: 7.1.3.10 =< 7.1.3.0 =< 7.1.3.99",
		candidate.RejectReason)
}

func TestMetadataParser_InstalledAboveMaximum(t *testing.T) {
	index := installedIndex(t, map[string]string{"bos.rte": "7.2.0.0"})
	parser := NewMetadataParser(index)

	candidate := parser.Parse("/tmp/IJ33333.epkg", "LABEL:            IJ33333\n\nbos.rte 7.1.3.0 7.1.3.99\n")

	assert.True(t, candidate.Rejected)
	assert.Contains(t, candidate.RejectReason, "do not satisfy condition")
}

// Only the first violated constraint is ever reported; the rest of the text
// is abandoned.
func TestMetadataParser_FirstViolationWins(t *testing.T) {
	index := installedIndex(t, map[string]string{"bos.rte": "7.1.3.0"})
	parser := NewMetadataParser(index)

	text := `LABEL:            IJ44444

bos.rte 7.1.3.10 7.1.3.99
bos.mp64 7.1.0.0 7.9.9.9
`
	candidate := parser.Parse("/tmp/IJ44444.epkg", text)

	assert.True(t, candidate.Rejected)
	assert.Contains(t, candidate.RejectReason, "prerequisite bos.rte")
	require.Len(t, candidate.Prerequisites, 1, "second constraint never evaluated")
}

func TestMetadataParser_SatisfiedBoundary(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{name: "at minimum", level: "7.1.3.0"},
		{name: "at maximum", level: "7.1.3.49"},
		{name: "inside range", level: "7.1.3.15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index := installedIndex(t, map[string]string{"bos.rte": tt.level})
			parser := NewMetadataParser(index)

			candidate := parser.Parse("/tmp/x.epkg", "LABEL:            IJ55555\n\nbos.rte 7.1.3.0 7.1.3.49\n")

			assert.False(t, candidate.Rejected)
		})
	}
}

func TestMetadataParser_UnparseableDateKeepsCandidate(t *testing.T) {
	parser := NewMetadataParser(installedIndex(t, nil))

	text := `LABEL:            IJ66666
PACKAGING DATE:   Mon Okt  9 09:35:09 CDT 2017
   LOCATION:      /usr/lib/a
`
	candidate := parser.Parse("/tmp/IJ66666.epkg", text)

	assert.False(t, candidate.Rejected)
	assert.Equal(t, "Mon Okt  9 09:35:09 CDT 2017", candidate.PackagingDate)
	assert.Equal(t, int64(-1), candidate.Epoch)
}

func TestMetadataParser_MissingDateSortsLast(t *testing.T) {
	parser := NewMetadataParser(installedIndex(t, nil))

	candidate := parser.Parse("/tmp/IJ77777.epkg", "LABEL:            IJ77777\n   LOCATION:      /usr/lib/a\n")

	assert.False(t, candidate.Rejected)
	assert.Empty(t, candidate.PackagingDate)
	assert.Equal(t, int64(-1), candidate.Epoch)
}

func TestMetadataParser_EmptyText(t *testing.T) {
	parser := NewMetadataParser(installedIndex(t, nil))

	candidate := parser.Parse("/tmp/empty.epkg", "")

	assert.False(t, candidate.Rejected)
	assert.Empty(t, candidate.Label)
	assert.Equal(t, int64(-1), candidate.Epoch)
	assert.Empty(t, candidate.Files)
}

func TestMetadataParser_FirstLabelWins(t *testing.T) {
	parser := NewMetadataParser(installedIndex(t, nil))

	candidate := parser.Parse("/tmp/x.epkg", "LABEL:            FIRST\nLABEL:            SECOND\n")

	assert.Equal(t, "FIRST", candidate.Label)
}
