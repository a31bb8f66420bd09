package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spigell/resume-analyzer/internal/reference"
)

func TestExtractCertifications(t *testing.T) {
	span := "AWS Certified Solutions Architect 2021\nGoogle Professional Data Engineer (2020)\n• Scrum Master\nABC"

	certs := ExtractCertifications(span, reference.Default().CertificationIssuers)

	assert.Equal(t, []CertificationEntry{
		{Name: "AWS Certified Solutions Architect", Year: "2021", Issuer: "AWS"},
		{Name: "Google Professional Data Engineer", Year: "2020", Issuer: "Google"},
		{Name: "Scrum Master"},
	}, certs)
}

func TestExtractCertificationsEmpty(t *testing.T) {
	certs := ExtractCertifications("", nil)
	assert.NotNil(t, certs)
	assert.Empty(t, certs)
}
