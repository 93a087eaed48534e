package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gemdesk/internal/rpcclient"
)

func TestDecodeObject(t *testing.T) {
	value, err := decodeObject("where", "")
	if err != nil || value != nil {
		t.Fatalf("empty input should be nil, got %v %v", value, err)
	}
	value, err = decodeObject("where", `{"id": 3}`)
	if err != nil || value["id"] != float64(3) {
		t.Fatalf("unexpected value %v %v", value, err)
	}
	if _, err := decodeObject("data", `[1,2]`); err == nil {
		t.Fatalf("array should be rejected")
	}
}

func TestRunDoAllPrintsResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var params rpcclient.Params
		_ = json.NewDecoder(r.Body).Decode(&params)
		if params.Table != "faqs" || params.Action != "soft_delete" || params.Where["id"] != float64(4) {
			t.Errorf("unexpected params: %+v", params)
		}
		_, _ = w.Write([]byte(`{"success":true,"affected":1}`))
	}))
	defer server.Close()

	client, err := rpcclient.New(rpcclient.Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	var out bytes.Buffer
	err = runDoAll(context.Background(), client, []string{"-table", "faqs", "-action", "soft_delete", "-where", `{"id":4}`}, &out)
	if err != nil {
		t.Fatalf("doall failed: %v", err)
	}
	if !strings.Contains(out.String(), `"affected": 1`) {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestRunAttributesResolvesOption(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/attributes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"status_code":0,"msg":"success","data":{` +
			`"metal":{"attribute_id":1,"type":"metal","name":"Metal","options":[{"id":3,"option_name":"18K Gold"}]},` +
			`"diamond":{"attribute_id":2,"type":"diamond","name":"Diamond","options":[{"id":5,"option_name":"VS1"}]},` +
			`"size":{"attribute_id":3,"type":"size","name":"Size","options":[{"id":7,"option_name":"US 6"}]}}}`))
	}))
	defer server.Close()

	client, err := rpcclient.New(rpcclient.Options{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	var out bytes.Buffer
	if err := runAttributes(context.Background(), client, []string{"-option", "5"}, &out); err != nil {
		t.Fatalf("attributes failed: %v", err)
	}
	if got := out.String(); got != "diamond\t5\tVS1\n" {
		t.Fatalf("unexpected output: %q", got)
	}

	out.Reset()
	if err := runAttributes(context.Background(), client, nil, &out); err != nil {
		t.Fatalf("attributes catalog failed: %v", err)
	}
	if !strings.Contains(out.String(), `"option_name": "18K Gold"`) {
		t.Fatalf("catalog should be printed: %s", out.String())
	}

	if err := runAttributes(context.Background(), client, []string{"-option", "99"}, &out); err == nil {
		t.Fatalf("unknown option should fail")
	}
}

func TestPrintSessionPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	client, err := rpcclient.New(rpcclient.Options{BaseURL: "http://127.0.0.1", Store: rpcclient.NewFileTokenStore(path)})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	var out bytes.Buffer
	printSessionPath(&out, client, "session saved")
	if out.String() != "session saved: "+path+"\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	memory, err := rpcclient.New(rpcclient.Options{BaseURL: "http://127.0.0.1"})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	out.Reset()
	printSessionPath(&out, memory, "session saved")
	if out.Len() != 0 {
		t.Fatalf("memory store has no path, got %q", out.String())
	}
}
