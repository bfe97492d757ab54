package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Veraticus/txrisk/internal/common"
	"github.com/Veraticus/txrisk/internal/riskapi"
	"github.com/Veraticus/txrisk/internal/tui"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>021000021
<ACCTID>9988776655
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301120000[0:GMT]
<DTEND>20240331120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240305120000[0:GMT]
<TRNAMT>-10000.00
<FITID>TX123
<NAME>WIRE TRANSFER OUT
<MEMO>Invoice 7731 Acme Offshore Holdings
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240310120000[0:GMT]
<TRNAMT>2500.00
<FITID>TX124
<NAME>ACH DEPOSIT
</STMTTRN>
<STMTTRN>
<TRNTYPE>CHECK
<DTPOSTED>20240320120000[0:GMT]
<TRNAMT>-500.00
<FITID>TX125
<CHECKNUM>1234
<NAME>CHECK #1234
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240331120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// riskServer answers analysis requests and records what it received.
type riskServer struct {
	*httptest.Server
	failures map[string]int
	requests []riskapi.Request
	mu       sync.Mutex
}

func newRiskServer(t *testing.T) *riskServer {
	t.Helper()
	s := &riskServer{failures: map[string]int{}}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req riskapi.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, req)
		status := s.failures[req.TransactionID]
		s.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Transaction_ID":"` + req.TransactionID + `","Risk_Score":0.42,"Reason":"Looks routine"}`))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *riskServer) received() []riskapi.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]riskapi.Request(nil), s.requests...)
}

// execute runs the CLI with fresh configuration and captures its output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(viper.Reset)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeStatement(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.qfx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0o600))
	return path
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "txrisk version dev\n", stdout)
}

func TestAnalyzeSingle(t *testing.T) {
	server := newRiskServer(t)

	stdout, _, err := execute(t, "--api-url", server.URL,
		"analyze", "--id", "TX123", "--details", "wire transfer $10,000")
	require.NoError(t, err)

	require.Len(t, server.received(), 1)
	assert.Equal(t, riskapi.Request{TransactionID: "TX123", Details: "wire transfer $10,000"}, server.received()[0])

	assert.Contains(t, stdout, "Analysis Result")
	assert.Contains(t, stdout, "TX123")
	assert.Contains(t, stdout, "0.42")
	assert.Contains(t, stdout, "Looks routine")
	assert.Contains(t, stdout, "unavailable")
}

func TestAnalyzeJSONOutput(t *testing.T) {
	server := newRiskServer(t)

	stdout, _, err := execute(t, "--api-url", server.URL,
		"analyze", "--id", "TX9", "--details", "cash", "--output", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"Transaction_ID":"TX9","Risk_Score":0.42,"Reason":"Looks routine"}`+"\n", stdout)
}

func TestAnalyzeErrors(t *testing.T) {
	server := newRiskServer(t)
	server.failures["TX500"] = http.StatusInternalServerError

	tests := []struct {
		check func(t *testing.T, err error)
		name  string
		args  []string
	}{
		{
			name: "missing id",
			args: []string{"analyze", "--details", "something"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrMissingField)
				var userErr *common.UserError
				require.ErrorAs(t, err, &userErr)
				assert.Equal(t, "--id is required", userErr.UserMessage)
			},
		},
		{
			name: "missing details",
			args: []string{"analyze", "--id", "TX1"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrMissingField)
				assert.Contains(t, err.Error(), "transaction details")
			},
		},
		{
			name: "unknown output format",
			args: []string{"analyze", "--id", "TX1", "--details", "d", "--output", "yaml"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			},
		},
		{
			name: "unusable api url",
			args: []string{"--api-url", "ftp://example.com", "analyze", "--id", "TX1", "--details", "d"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
				assert.ErrorIs(t, err, riskapi.ErrInvalidBaseURL)
			},
		},
		{
			name: "server error",
			args: []string{"--api-url", server.URL, "analyze", "--id", "TX500", "--details", "d"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrAnalysisFailed)
				assert.True(t, riskapi.IsStatus(err, http.StatusInternalServerError))
			},
		},
		{
			name: "invalid log level",
			args: []string{"--log-level", "loud", "version"},
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnalyzeStatement(t *testing.T) {
	server := newRiskServer(t)
	server.failures["TX124"] = http.StatusBadGateway
	path := writeStatement(t)

	stdout, _, err := execute(t, "--api-url", server.URL, "analyze", "--ofx", path)
	require.NoError(t, err)

	received := server.received()
	require.Len(t, received, 3)
	assert.Equal(t, "TX123", received[0].TransactionID)
	assert.Equal(t, "DEBIT 2024-03-05 -10000.00 WIRE TRANSFER OUT / Invoice 7731 Acme Offshore Holdings", received[0].Details)
	assert.Equal(t, "TX125", received[2].TransactionID)

	assert.Contains(t, stdout, "TX123")
	assert.Contains(t, stdout, "TX125")
	assert.NotContains(t, stdout, "TX124")
	assert.Contains(t, stdout, "Analyzed 2 transaction(s), 1 failed")
}

func TestAnalyzeStatementAllFailed(t *testing.T) {
	server := newRiskServer(t)
	for _, id := range []string{"TX123", "TX124", "TX125"} {
		server.failures[id] = http.StatusServiceUnavailable
	}

	stdout, _, err := execute(t, "--api-url", server.URL, "analyze", "--ofx", writeStatement(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrAnalysisFailed)
	assert.Contains(t, stdout, "Analyzed 0 transaction(s), 3 failed")
}

func TestAnalyzeStatementJSON(t *testing.T) {
	server := newRiskServer(t)

	stdout, _, err := execute(t, "--api-url", server.URL, "analyze", "--ofx", writeStatement(t), "-o", "json")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines[:3] {
		assert.True(t, json.Valid([]byte(line)), line)
	}
}

func TestAnalyzeStatementMissingFile(t *testing.T) {
	_, _, err := execute(t, "analyze", "--ofx", filepath.Join(t.TempDir(), "missing.qfx"))
	require.Error(t, err)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestFormWithoutTerminal(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "state", "txrisk.log")

	stdout, _, err := execute(t, "form", "--log-file", logPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, tui.ErrNoMountPoint)
	assert.Empty(t, stdout)

	var userErr *common.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Contains(t, userErr.UserMessage, "txrisk analyze")

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "Root container not found")
}
