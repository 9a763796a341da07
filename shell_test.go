// Copyright 2024-2026 George (earentir) Pantazis (https://earentir.dev)
// SPDX-License-Identifier: GPL-2.0-only
package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"dnsrdf/config"
	"dnsrdf/dnsrecords"
	"dnsrdf/logger"
	"dnsrdf/mapper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv() *runtimeEnv {
	return &runtimeEnv{cfg: config.Default(), logger: logger.Discard(), mapper: mapper.Default}
}

func TestHandleShellLineTXT(t *testing.T) {
	var out bytes.Buffer
	err := handleShellLine(testEnv(), `txt name=example.com isotime=2013-01-01T00:00:00 text="v=spf1 -all"`, &out)
	require.NoError(t, err)
	got := out.String()
	assert.Contains(t, got, `<uri:domain:example.com> <http://purl.org/dns#hasTXTAttribute_v> "spf1 -all" <https://dnscensus2013.neocities.org/probe-2013-01-01T00:00:00+00:00> .`)
	assert.True(t, strings.HasSuffix(got, ".\n\n"))
}

func TestHandleShellLineDefaultsIsotime(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, handleShellLine(testEnv(), "A name=a.example ip4address=1.2.3.4", &out))
	assert.Contains(t, out.String(), "<http://purl.org/dns#Probe>")
}

func TestHandleShellLineErrors(t *testing.T) {
	var out bytes.Buffer
	env := testEnv()
	assert.ErrorIs(t, handleShellLine(env, "PTR name=x", &out), dnsrecords.ErrUnknownKind)
	assert.ErrorIs(t, handleShellLine(env, "A name=a.example", &out), dnsrecords.ErrMissingField)
	assert.Error(t, handleShellLine(env, "A name", &out))
	assert.True(t, errors.Is(handleShellLine(env, "exit", &out), errShellExit))
	assert.Empty(t, out.String())
}

func TestHandleShellLineHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, handleShellLine(testEnv(), "?", &out))
	assert.Contains(t, out.String(), "Available commands:")

	out.Reset()
	require.NoError(t, handleShellLine(testEnv(), "soa ?", &out))
	assert.Contains(t, out.String(), "serial")
	assert.Contains(t, out.String(), "required")
}

func TestRootCommandVersion(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", t.TempDir(), "version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dnsrdf version "+appversion+"\n", out.String())
}

func TestRootCommandConvert(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader("name,nameserver,isotime\r\nexample.com,ns1.example.net,2013-01-01T00:00:00Z\r\n"))
	cmd.SetArgs([]string{"--config", t.TempDir(), "--workers", "2", "--log-level", "none", "convert", "ns"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "<uri:domain:example.com> <http://purl.org/dns#hasNameserver> <uri:domain:ns1.example.net> <https://dnscensus2013.neocities.org/probe-2013-01-01T00:00:00+00:00> .")
}

func TestRootCommandRejectsBadLogLevel(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", t.TempDir(), "--log-level", "loud", "version"})
	assert.Error(t, cmd.Execute())
}
