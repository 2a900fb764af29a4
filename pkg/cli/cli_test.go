package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/fleet-records/pkg/validate"
)

func hasName(flag cli.Flag, name string) bool {
	if flag == nil {
		return false
	}
	for _, n := range flag.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func requireFlags(t *testing.T, cmd *cli.Command, names ...string) {
	t.Helper()
	for _, flagName := range names {
		found := false
		for _, flag := range cmd.Flags {
			if hasName(flag, flagName) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("required flag %q not found on %q", flagName, cmd.Name)
		}
	}
}

func TestValidateCmd_Structure(t *testing.T) {
	cmd := validateCmd()

	if cmd.Name != "validate" {
		t.Errorf("Name = %v, want validate", cmd.Name)
	}
	if cmd.Usage == "" {
		t.Error("Usage should not be empty")
	}
	if cmd.Description == "" {
		t.Error("Description should not be empty")
	}
	if cmd.Action == nil {
		t.Error("Action should not be nil")
	}

	requireFlags(t, cmd, "kind", "catalog", "output", "format", "no-fail", "concurrency")
}

func TestSchemaCmd_Structure(t *testing.T) {
	cmd := schemaCmd()

	if cmd.Name != "schema" {
		t.Errorf("Name = %v, want schema", cmd.Name)
	}
	if len(cmd.Commands) != 2 {
		t.Fatalf("expected 2 subcommands, got %d", len(cmd.Commands))
	}

	for _, sub := range cmd.Commands {
		if sub.Action == nil {
			t.Errorf("subcommand %q has nil Action", sub.Name)
		}
		requireFlags(t, sub, "catalog", "output", "format")
	}
}

func TestNew_RootCommand(t *testing.T) {
	root := New("v9.9.9")

	if root.Name != "frctl" {
		t.Errorf("Name = %v, want frctl", root.Name)
	}
	if root.Version != "v9.9.9" {
		t.Errorf("Version = %v, want v9.9.9", root.Version)
	}
	if len(root.Commands) == 0 {
		t.Error("expected subcommands on root")
	}

	requireFlags(t, root, "debug", "log-json")
}

func TestCommandLister(_ *testing.T) {
	commandLister(context.Background(), nil)

	cmd := &cli.Command{Name: "test"}
	commandLister(context.Background(), cmd)

	rootCmd := &cli.Command{
		Name: "root",
		Commands: []*cli.Command{
			{Name: "visible1", Hidden: false},
			{Name: "hidden", Hidden: true},
			{Name: "visible2", Hidden: false},
		},
	}
	commandLister(context.Background(), rootCmd)
}

func TestParseOutputFormat(t *testing.T) {
	cmd := &cli.Command{
		Name:  "test",
		Flags: []cli.Flag{formatFlag},
	}
	if err := cmd.Run(context.Background(), []string{"test", "--format", "yaml"}); err == nil {
		// Run without action succeeds; format value is set on cmd.
		format, err := parseOutputFormat(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(format) != "yaml" {
			t.Errorf("format = %v, want yaml", format)
		}
	}
}

func TestDecodeRawRecord(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "rec.json")
	if err := os.WriteFile(jsonPath, []byte(`{"station_id": "ST-07", "crew_size": 6}`), 0o600); err != nil {
		t.Fatal(err)
	}
	raw, err := decodeRawRecord(jsonPath)
	if err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if raw["station_id"] != "ST-07" {
		t.Errorf("unexpected value: %v", raw["station_id"])
	}

	yamlPath := filepath.Join(dir, "rec.yaml")
	if err := os.WriteFile(yamlPath, []byte("station_id: ST-07\ncrew_size: 6\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	raw, err = decodeRawRecord(yamlPath)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if raw["crew_size"] != 6 {
		t.Errorf("unexpected value: %v", raw["crew_size"])
	}

	if _, err := decodeRawRecord(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	badPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badPath, []byte(": not valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := decodeRawRecord(badPath); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestValidateCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "station.json")
	record := `{
		"station_id": "ST-07",
		"name": "Helios Relay",
		"crew_size": 6,
		"power_level": 88.0,
		"oxygen_level": 97.2,
		"last_maintenance": "2026-05-20T14:00:00Z"
	}`
	if err := os.WriteFile(input, []byte(record), 0o600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "result.json")

	root := New("test")
	args := []string{"frctl", "validate", "--kind", "station", "--output", output, input}
	if err := root.Run(context.Background(), args); err != nil {
		t.Fatalf("validate command failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var doc validate.ResultDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not a result document: %v", err)
	}
	if doc.Status != validate.StatusValid {
		t.Errorf("status = %v, want valid", doc.Status)
	}
	if doc.RecordKind != "station" {
		t.Errorf("record kind = %v, want station", doc.RecordKind)
	}
	if doc.ReportID == "" {
		t.Error("expected a report id")
	}
}

func TestValidateCmd_InvalidRecordFailsCommand(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "station.json")
	if err := os.WriteFile(input, []byte(`{"station_id": "S"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "result.json")

	root := New("test")
	args := []string{"frctl", "validate", "--kind", "station", "--output", output, input}
	err := root.Run(context.Background(), args)
	if err == nil {
		t.Fatal("expected non-nil error for invalid record")
	}
	if !strings.Contains(err.Error(), "failed validation") {
		t.Errorf("unexpected error: %v", err)
	}

	// The result document is still written.
	content, readErr := os.ReadFile(output)
	if readErr != nil {
		t.Fatalf("failed to read output: %v", readErr)
	}
	var doc validate.ResultDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		t.Fatalf("output is not a result document: %v", err)
	}
	if doc.Status != validate.StatusInvalid {
		t.Errorf("status = %v, want invalid", doc.Status)
	}
	if len(doc.Violations) == 0 {
		t.Error("expected violations in the result document")
	}

	// --no-fail downgrades the exit status but not the document.
	args = []string{"frctl", "validate", "--kind", "station", "--no-fail", "--output", output, input}
	if err := New("test").Run(context.Background(), args); err != nil {
		t.Errorf("expected success with --no-fail, got: %v", err)
	}
}

func TestValidateCmd_MultipleInputsKeepOrder(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	record := `{
		"station_id": "ST-07",
		"name": "Helios Relay",
		"crew_size": 6,
		"power_level": 88.0,
		"oxygen_level": 97.2,
		"last_maintenance": "2026-05-20T14:00:00Z"
	}`
	if err := os.WriteFile(good, []byte(record), 0o600); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"station_id": "S"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(dir, "results.json")

	root := New("test")
	args := []string{"frctl", "validate", "--kind", "station", "--no-fail", "--output", output, bad, good}
	if err := root.Run(context.Background(), args); err != nil {
		t.Fatalf("validate command failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	var docs []validate.ResultDocument
	if err := json.Unmarshal(content, &docs); err != nil {
		t.Fatalf("output is not a result document list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].Status != validate.StatusInvalid || docs[1].Status != validate.StatusValid {
		t.Errorf("documents out of input order: %v, %v", docs[0].Status, docs[1].Status)
	}
	if docs[0].Source != bad || docs[1].Source != good {
		t.Errorf("unexpected sources: %v, %v", docs[0].Source, docs[1].Source)
	}
}

func TestValidateCmd_UnknownKind(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "rec.json")
	if err := os.WriteFile(input, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	root := New("test")
	args := []string{"frctl", "validate", "--kind", "missoin", input}
	err := root.Run(context.Background(), args)
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("expected suggestion in error, got: %v", err)
	}
}

func TestSchemaListCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "kinds.json")

	root := New("test")
	args := []string{"frctl", "schema", "list", "--output", output}
	if err := root.Run(context.Background(), args); err != nil {
		t.Fatalf("schema list failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var summaries []schemaSummary
	if err := json.Unmarshal(content, &summaries); err != nil {
		t.Fatalf("output is not a summary list: %v", err)
	}
	if len(summaries) != 4 {
		t.Errorf("expected 4 builtin kinds, got %d", len(summaries))
	}
}

func TestSchemaShowCmd_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "mission.json")

	root := New("test")
	args := []string{"frctl", "schema", "show", "--output", output, "mission"}
	if err := root.Run(context.Background(), args); err != nil {
		t.Fatalf("schema show failed: %v", err)
	}

	content, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var shown map[string]any
	if err := json.Unmarshal(content, &shown); err != nil {
		t.Fatalf("output is not a schema document: %v", err)
	}
	if shown["kind"] != "mission" {
		t.Errorf("kind = %v, want mission", shown["kind"])
	}

	if err := root.Run(context.Background(), []string{"frctl", "schema", "show"}); err == nil {
		t.Error("expected error when no kind is given")
	}
}
