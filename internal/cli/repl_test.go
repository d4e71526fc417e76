package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	loginCalls      int
	logoutCalls     int
	dashboardCalls  int
	profileCalls    int
	statsCalls      int
	addTeacherCalls int
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loginCalls++
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.logoutCalls++
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Dashboard(context.Context) error  { f.dashboardCalls++; return nil }
func (f *fakeExec) Profile(context.Context) error    { f.profileCalls++; return nil }
func (f *fakeExec) Stats(context.Context) error      { f.statsCalls++; return nil }
func (f *fakeExec) AddTeacher(context.Context) error { f.addTeacherCalls++; return nil }

func runScript(t *testing.T, f *fakeExec, script string) []string {
	t.Helper()
	lines, restore := stubPrintln(t)
	defer restore()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), f, func() string { return "" }, scanner)
	return *lines
}

func TestREPL_DispatchesCommands(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runScript(t, f, "dashboard\nusers\nprofile\nstats\naddteacher\nlogout\nexit\n")

	if f.dashboardCalls != 1 {
		t.Fatalf("dashboard calls: %d", f.dashboardCalls)
	}
	if f.profileCalls != 2 {
		t.Fatalf("profile calls (users+profile): %d", f.profileCalls)
	}
	if f.statsCalls != 1 {
		t.Fatalf("stats calls: %d", f.statsCalls)
	}
	if f.addTeacherCalls != 1 {
		t.Fatalf("addteacher calls: %d", f.addTeacherCalls)
	}
	if f.logoutCalls != 1 {
		t.Fatalf("logout calls: %d", f.logoutCalls)
	}
}

func TestREPL_GatedCommandWhileSignedOut_OpensLogin(t *testing.T) {
	f := &fakeExec{}
	runScript(t, f, "stats\nexit\n")

	if f.loginCalls != 1 {
		t.Fatalf("login calls: %d", f.loginCalls)
	}
	if f.statsCalls != 0 {
		t.Fatalf("stats must not run while signed out: %d", f.statsCalls)
	}
}

func TestREPL_UnknownCommandReported(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	lines := runScript(t, f, "frobnicate\nexit\n")

	if !containsLine(lines, "Unknown command") {
		t.Fatalf("missing message, got %v", lines)
	}
}

func TestREPL_HelpVariesWithState(t *testing.T) {
	out := runScript(t, &fakeExec{}, "help\nexit\n")
	if !containsLine(out, "login, exit") {
		t.Fatalf("anonymous help wrong: %v", out)
	}

	out = runScript(t, &fakeExec{loggedIn: true}, "help\nexit\n")
	if !containsLine(out, "dashboard") || !containsLine(out, "addteacher") {
		t.Fatalf("signed-in help wrong: %v", out)
	}
}

func TestREPL_ExitsOnEOFAndBlankLinesIgnored(t *testing.T) {
	f := &fakeExec{loggedIn: true}
	runScript(t, f, "\n \ndashboard\n")

	if f.dashboardCalls != 1 {
		t.Fatalf("dashboard calls: %d", f.dashboardCalls)
	}
}
