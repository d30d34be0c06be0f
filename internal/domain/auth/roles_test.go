package auth

import "testing"

func TestCapabilitiesForAdminAndHR(t *testing.T) {
	for _, role := range []string{RoleAdmin, RoleHR} {
		caps := CapabilitiesFor(role)
		if !caps.ReviewOrgWide || !caps.ReviewTeam {
			t.Fatalf("%s should review org wide: %+v", role, caps)
		}
		if !caps.ManageCycles || !caps.EditMatrix {
			t.Fatalf("%s should manage cycles and matrix: %+v", role, caps)
		}
	}
}

func TestCapabilitiesForLeader(t *testing.T) {
	caps := CapabilitiesFor(RoleLeader)
	if caps.ReviewOrgWide {
		t.Fatal("leader must not review org wide")
	}
	if !caps.ReviewTeam {
		t.Fatal("leader should review own team")
	}
	if caps.ManageCycles || caps.EditMatrix || caps.ManageUsers {
		t.Fatalf("leader has unexpected admin capabilities: %+v", caps)
	}
}

func TestCapabilitiesForEmployeeAndUnknown(t *testing.T) {
	if caps := CapabilitiesFor(RoleEmployee); caps != (Capabilities{}) {
		t.Fatalf("employee should have no elevated capabilities: %+v", caps)
	}
	if caps := CapabilitiesFor("superuser"); caps != (Capabilities{}) {
		t.Fatalf("unknown role should resolve to zero capabilities: %+v", caps)
	}
	if ValidRole("superuser") {
		t.Fatal("unknown role reported valid")
	}
	if !ValidRole(RoleLeader) {
		t.Fatal("leader reported invalid")
	}
}
