package certs

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_GetOrCreateCertificate(t *testing.T) {
	tests := []struct {
		setup          func(t *testing.T, certDir string)
		validateResult func(t *testing.T, cert tls.Certificate)
		name           string
		errorContains  string
		wantErr        bool
	}{
		{
			name: "creates new certificate when none exists",
			validateResult: func(t *testing.T, cert tls.Certificate) {
				t.Helper()
				require.Len(t, cert.Certificate, 1)

				x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
				require.NoError(t, err)

				assert.Contains(t, x509Cert.DNSNames, "localhost")
				assert.True(t, x509Cert.NotAfter.After(time.Now().Add(364*24*time.Hour)), "certificate should be valid for about a year")
				assert.NoError(t, x509Cert.VerifyHostname("localhost"))
			},
		},
		{
			name: "reuses existing valid certificate",
			setup: func(t *testing.T, certDir string) {
				t.Helper()
				p := NewProvider(certDir)
				first, err := p.GetOrCreateCertificate()
				require.NoError(t, err)
				require.Len(t, first.Certificate, 1)
			},
			validateResult: func(t *testing.T, cert tls.Certificate) {
				t.Helper()
				require.Len(t, cert.Certificate, 1)

				x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
				require.NoError(t, err)
				assert.True(t, x509Cert.NotBefore.Before(time.Now().Add(1*time.Second)))
			},
		},
		{
			name: "regenerates unreadable certificate files",
			setup: func(t *testing.T, certDir string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(certDir, 0700))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, "investd.crt"), []byte("not a certificate"), 0600))
				require.NoError(t, os.WriteFile(filepath.Join(certDir, "investd.key"), []byte("not a key"), 0600))
			},
			validateResult: func(t *testing.T, cert tls.Certificate) {
				t.Helper()
				require.Len(t, cert.Certificate, 1)

				x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
				require.NoError(t, err)
				assert.True(t, x509Cert.NotBefore.After(time.Now().Add(-1*time.Minute)))
			},
		},
		{
			name: "reports stat failures on the certificate path",
			setup: func(t *testing.T, certDir string) {
				t.Helper()
				parentDir := filepath.Dir(certDir)
				require.NoError(t, os.MkdirAll(parentDir, 0700))
				require.NoError(t, os.WriteFile(certDir, []byte("not a directory"), 0600))
			},
			wantErr:       true,
			errorContains: "failed to check certificate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certDir := filepath.Join(t.TempDir(), "certs")

			if tt.setup != nil {
				tt.setup(t, certDir)
			}

			p := NewProvider(certDir)
			cert, err := p.GetOrCreateCertificate()

			if tt.wantErr {
				require.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				return
			}

			require.NoError(t, err)
			if tt.validateResult != nil {
				tt.validateResult(t, cert)
			}

			certInfo, err := os.Stat(filepath.Join(certDir, "investd.crt"))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), certInfo.Mode().Perm(), "certificate file should be owner-only")

			keyInfo, err := os.Stat(filepath.Join(certDir, "investd.key"))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), keyInfo.Mode().Perm(), "key file should be owner-only")
		})
	}
}

func TestProvider_CertificateExists(t *testing.T) {
	writeFile := func(t *testing.T, certDir, name string) {
		t.Helper()
		require.NoError(t, os.MkdirAll(certDir, 0700))
		require.NoError(t, os.WriteFile(filepath.Join(certDir, name), []byte("data"), 0600))
	}

	tests := []struct {
		setup      func(t *testing.T, certDir string)
		name       string
		wantExists bool
	}{
		{
			name:       "no files",
			wantExists: false,
		},
		{
			name: "both files",
			setup: func(t *testing.T, certDir string) {
				writeFile(t, certDir, "investd.crt")
				writeFile(t, certDir, "investd.key")
			},
			wantExists: true,
		},
		{
			name: "certificate only",
			setup: func(t *testing.T, certDir string) {
				writeFile(t, certDir, "investd.crt")
			},
			wantExists: false,
		},
		{
			name: "key only",
			setup: func(t *testing.T, certDir string) {
				writeFile(t, certDir, "investd.key")
			},
			wantExists: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			certDir := filepath.Join(t.TempDir(), "certs")

			if tt.setup != nil {
				tt.setup(t, certDir)
			}

			p := NewProvider(certDir)
			exists, err := p.CertificateExists()
			require.NoError(t, err)
			assert.Equal(t, tt.wantExists, exists)
		})
	}
}

func TestVerifyCertificate(t *testing.T) {
	t.Run("fresh certificate passes", func(t *testing.T) {
		p := NewProvider(filepath.Join(t.TempDir(), "certs"))
		cert, err := p.GetOrCreateCertificate()
		require.NoError(t, err)

		assert.NoError(t, verifyCertificate(cert))
	})

	t.Run("empty certificate fails", func(t *testing.T) {
		err := verifyCertificate(tls.Certificate{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no certificates found")
	})
}

func TestCertificateCoversLoopback(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "certs"))
	cert, err := p.GetOrCreateCertificate()
	require.NoError(t, err)

	require.Len(t, cert.Certificate, 1)
	x509Cert, err := x509.ParseCertificate(cert.Certificate[0])
	require.NoError(t, err)

	hasIPv4 := false
	hasIPv6 := false
	for _, ip := range x509Cert.IPAddresses {
		if ip.Equal(net.IPv4(127, 0, 0, 1)) {
			hasIPv4 = true
		}
		if ip.Equal(net.IPv6loopback) {
			hasIPv6 = true
		}
	}
	assert.True(t, hasIPv4, "certificate should include IPv4 loopback")
	assert.True(t, hasIPv6, "certificate should include IPv6 loopback")
	assert.Equal(t, []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth}, x509Cert.ExtKeyUsage)
}
