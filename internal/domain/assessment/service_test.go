package assessment

import (
	"context"
	"testing"
	"time"

	"talenthub/internal/domain/auth"
)

type fakeStore struct {
	cycles      map[string]Cycle
	assessments map[string]Assessment
	details     map[string][]Detail
	assigned    map[string]bool
	applied     []StageWrite
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cycles:      map[string]Cycle{},
		assessments: map[string]Assessment{},
		details:     map[string][]Detail{},
		assigned:    map[string]bool{},
	}
}

func (f *fakeStore) CreateCycle(ctx context.Context, name string, startDate, endDate time.Time) (string, error) {
	id := "cycle-" + name
	f.cycles[id] = Cycle{ID: id, Name: name, StartDate: startDate, EndDate: endDate, Status: CycleStatusDraft}
	return id, nil
}

func (f *fakeStore) GetCycle(ctx context.Context, cycleID string) (Cycle, error) {
	cycle, ok := f.cycles[cycleID]
	if !ok {
		return Cycle{}, NotFoundf("cycle %s not found", cycleID)
	}
	return cycle, nil
}

func (f *fakeStore) ListCycles(ctx context.Context) ([]Cycle, error) { return nil, nil }

func (f *fakeStore) AdvanceCycleStatus(ctx context.Context, cycleID, fromStatus, toStatus string) (bool, error) {
	cycle, ok := f.cycles[cycleID]
	if !ok || cycle.Status != fromStatus {
		return false, nil
	}
	cycle.Status = toStatus
	f.cycles[cycleID] = cycle
	return true, nil
}

func (f *fakeStore) DeleteDraftCycle(ctx context.Context, cycleID string) (bool, error) {
	cycle, ok := f.cycles[cycleID]
	if !ok || cycle.Status != CycleStatusDraft {
		return false, nil
	}
	delete(f.cycles, cycleID)
	return true, nil
}

func (f *fakeStore) CreateAssessment(ctx context.Context, userID, cycleID string, requirements []RequirementSnapshot) (string, bool, error) {
	key := userID + "/" + cycleID
	if f.assigned[key] {
		return "", false, nil
	}
	f.assigned[key] = true
	id := "assessment-" + key
	f.assessments[id] = Assessment{ID: id, UserID: userID, CycleID: cycleID, Status: StatusSelfAssessing}
	for _, req := range requirements {
		level := req.RequiredLevel
		f.details[id] = append(f.details[id], Detail{
			AssessmentID:  id,
			CompetencyID:  req.CompetencyID,
			RequiredLevel: &level,
		})
	}
	return id, true, nil
}

func (f *fakeStore) GetAssessment(ctx context.Context, assessmentID string) (Assessment, error) {
	a, ok := f.assessments[assessmentID]
	if !ok {
		return Assessment{}, NotFoundf("assessment %s not found", assessmentID)
	}
	return a, nil
}

func (f *fakeStore) ListCycleAssessments(ctx context.Context, cycleID, status string, userIDs []string) ([]Assessment, error) {
	var out []Assessment
	for _, a := range f.assessments {
		if a.CycleID != cycleID {
			continue
		}
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeStore) ListUserAssessments(ctx context.Context, userID string) ([]Assessment, error) {
	return nil, nil
}

func (f *fakeStore) ListDetails(ctx context.Context, assessmentID string) ([]Detail, error) {
	return f.details[assessmentID], nil
}

func (f *fakeStore) ApplyStage(ctx context.Context, write StageWrite) error {
	a, ok := f.assessments[write.AssessmentID]
	if !ok {
		return NotFoundf("assessment %s not found", write.AssessmentID)
	}
	if a.Status != write.ExpectedStatus {
		return Statef("assessment already in stage %s", a.Status)
	}
	a.Status = write.NextStatus
	f.assessments[write.AssessmentID] = a

	details := f.details[write.AssessmentID]
	for i := range details {
		entry, ok := write.Entries[details[i].CompetencyID]
		if !ok {
			continue
		}
		score := entry.Score
		switch write.Field {
		case stageFieldSelf:
			details[i].SelfScore = &score
		case stageFieldLeader:
			details[i].LeaderScore = &score
		case stageFieldFinal:
			details[i].FinalScore = &score
		}
		details[i].Note = entry.Note
	}
	f.applied = append(f.applied, write)
	return nil
}

type fakeDirectory struct {
	eligible []EligibleUser
	leaders  map[string]string
	teams    map[string][]string
}

func (f *fakeDirectory) EligibleUsers(ctx context.Context) ([]EligibleUser, error) {
	return f.eligible, nil
}

func (f *fakeDirectory) LeaderUserID(ctx context.Context, userID string) (string, error) {
	return f.leaders[userID], nil
}

func (f *fakeDirectory) TeamMemberIDs(ctx context.Context, leaderUserID string) ([]string, error) {
	return f.teams[leaderUserID], nil
}

type fakeMatrix struct {
	byBand map[string][]RequirementSnapshot
}

func (f *fakeMatrix) MatrixForBand(ctx context.Context, careerBandID string) ([]RequirementSnapshot, error) {
	return f.byBand[careerBandID], nil
}

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Notify(userID, templateCode string, vars map[string]string) {
	f.sent = append(f.sent, templateCode+":"+userID)
}

func fixture() (*Service, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	dir := &fakeDirectory{
		eligible: []EligibleUser{
			{UserID: "emp-1", CareerBandID: "band-mid"},
			{UserID: "emp-2", CareerBandID: "band-empty"},
		},
		leaders: map[string]string{"emp-1": "lead-1", "emp-2": "lead-1"},
		teams:   map[string][]string{"lead-1": {"emp-1", "emp-2"}},
	}
	matrix := &fakeMatrix{byBand: map[string][]RequirementSnapshot{
		"band-mid": {
			{CompetencyID: "c1", RequiredLevel: 3},
			{CompetencyID: "c2", RequiredLevel: 4},
		},
	}}
	notifier := &fakeNotifier{}
	return NewService(store, dir, matrix, notifier), store, notifier
}

func TestCreateCycleValidation(t *testing.T) {
	svc, _, _ := fixture()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.CreateCycle(context.Background(), hr, "", start, start.AddDate(0, 3, 0)); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := svc.CreateCycle(context.Background(), hr, "H1", start, start); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for end before start, got %v", err)
	}
	employee := auth.NewActor("emp-1", auth.RoleEmployee)
	if _, err := svc.CreateCycle(context.Background(), employee, "H1", start, start.AddDate(0, 3, 0)); KindOf(err) != KindPermission {
		t.Fatalf("expected permission error, got %v", err)
	}
	if _, err := svc.CreateCycle(context.Background(), hr, "H1", start, start.AddDate(0, 3, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestActivateAssignsAndSkips(t *testing.T) {
	svc, store, notifier := fixture()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	ctx := context.Background()

	cycleID, err := svc.CreateCycle(ctx, hr, "H1 2026", time.Now(), time.Now().AddDate(0, 3, 0))
	if err != nil {
		t.Fatalf("create cycle: %v", err)
	}

	summary, err := svc.Activate(ctx, hr, cycleID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if summary.Assigned != 1 {
		t.Fatalf("expected 1 assigned, got %d", summary.Assigned)
	}
	if summary.SkippedNoMatrix != 1 {
		t.Fatalf("expected 1 skipped without matrix, got %d", summary.SkippedNoMatrix)
	}
	if store.cycles[cycleID].Status != CycleStatusActive {
		t.Fatalf("expected cycle active, got %s", store.cycles[cycleID].Status)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("expected 1 assignment notification, got %d", len(notifier.sent))
	}
}

func TestActivateIsIdempotent(t *testing.T) {
	svc, _, _ := fixture()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	ctx := context.Background()

	cycleID, _ := svc.CreateCycle(ctx, hr, "H1 2026", time.Now(), time.Now().AddDate(0, 3, 0))
	if _, err := svc.Activate(ctx, hr, cycleID); err != nil {
		t.Fatalf("first activate: %v", err)
	}

	summary, err := svc.Activate(ctx, hr, cycleID)
	if err != nil {
		t.Fatalf("second activate: %v", err)
	}
	if summary.Assigned != 0 {
		t.Fatalf("expected no new assignments, got %d", summary.Assigned)
	}
	if summary.AlreadyAssigned != 1 {
		t.Fatalf("expected 1 already assigned, got %d", summary.AlreadyAssigned)
	}
}

func TestActivateCompletedCycleRejected(t *testing.T) {
	svc, store, _ := fixture()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	ctx := context.Background()

	cycleID, _ := svc.CreateCycle(ctx, hr, "H1 2026", time.Now(), time.Now().AddDate(0, 3, 0))
	cycle := store.cycles[cycleID]
	cycle.Status = CycleStatusCompleted
	store.cycles[cycleID] = cycle

	if _, err := svc.Activate(ctx, hr, cycleID); KindOf(err) != KindState {
		t.Fatalf("expected state error, got %v", err)
	}
}

func TestDeleteCycleOnlyDraft(t *testing.T) {
	svc, _, _ := fixture()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	ctx := context.Background()

	cycleID, _ := svc.CreateCycle(ctx, hr, "H1 2026", time.Now(), time.Now().AddDate(0, 3, 0))
	if _, err := svc.Activate(ctx, hr, cycleID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := svc.DeleteCycle(ctx, hr, cycleID); KindOf(err) != KindState {
		t.Fatalf("expected state error deleting active cycle, got %v", err)
	}
	if err := svc.Close(ctx, hr, cycleID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := svc.Close(ctx, hr, cycleID); KindOf(err) != KindState {
		t.Fatalf("expected state error closing completed cycle, got %v", err)
	}
}

func activatedAssessment(t *testing.T, svc *Service, store *fakeStore) string {
	t.Helper()
	hr := auth.NewActor("hr-1", auth.RoleHR)
	cycleID, _ := svc.CreateCycle(context.Background(), hr, "H1 2026", time.Now(), time.Now().AddDate(0, 3, 0))
	if _, err := svc.Activate(context.Background(), hr, cycleID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	for id := range store.assessments {
		return id
	}
	t.Fatal("no assessment assigned")
	return ""
}

func selfEntries() []ScoreEntry {
	return []ScoreEntry{
		{CompetencyID: "c1", Score: 2},
		{CompetencyID: "c2", Score: 4},
	}
}

func TestSubmitSelfAdvancesAndNotifiesLeader(t *testing.T) {
	svc, store, notifier := fixture()
	id := activatedAssessment(t, svc, store)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)

	if err := svc.SubmitSelf(context.Background(), subject, id, selfEntries()); err != nil {
		t.Fatalf("submit self: %v", err)
	}
	if store.assessments[id].Status != StatusLeaderAssessing {
		t.Fatalf("expected leader_assessing, got %s", store.assessments[id].Status)
	}
	found := false
	for _, sent := range notifier.sent {
		if sent == "leader_review_ready:lead-1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected leader notification, got %v", notifier.sent)
	}
}

func TestSubmitSelfOnlyBySubject(t *testing.T) {
	svc, store, _ := fixture()
	id := activatedAssessment(t, svc, store)
	other := auth.NewActor("emp-9", auth.RoleEmployee)

	if err := svc.SubmitSelf(context.Background(), other, id, selfEntries()); KindOf(err) != KindPermission {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestSubmitSelfTwiceRejected(t *testing.T) {
	svc, store, _ := fixture()
	id := activatedAssessment(t, svc, store)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)

	if err := svc.SubmitSelf(context.Background(), subject, id, selfEntries()); err != nil {
		t.Fatalf("submit self: %v", err)
	}
	if err := svc.SubmitSelf(context.Background(), subject, id, selfEntries()); KindOf(err) != KindState {
		t.Fatalf("expected state error on resubmit, got %v", err)
	}
}

func TestSubmitRejectedAfterCycleClosed(t *testing.T) {
	svc, store, _ := fixture()
	id := activatedAssessment(t, svc, store)
	hr := auth.NewActor("hr-1", auth.RoleHR)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)
	leader := auth.NewActor("lead-1", auth.RoleLeader)
	ctx := context.Background()

	if err := svc.Close(ctx, hr, store.assessments[id].CycleID); err != nil {
		t.Fatalf("close: %v", err)
	}

	if err := svc.SubmitSelf(ctx, subject, id, selfEntries()); KindOf(err) != KindState {
		t.Fatalf("expected state error submitting into a completed cycle, got %v", err)
	}
	if store.assessments[id].Status != StatusSelfAssessing {
		t.Fatalf("expected stage unchanged, got %s", store.assessments[id].Status)
	}
	if err := svc.SubmitLeader(ctx, leader, id, selfEntries()); KindOf(err) != KindState {
		t.Fatalf("expected state error for leader rating in a completed cycle, got %v", err)
	}
	if err := svc.Finalize(ctx, leader, id, nil, ""); KindOf(err) != KindState {
		t.Fatalf("expected state error finalizing in a completed cycle, got %v", err)
	}
}

func TestSubmitLeaderRequiresSubjectLeader(t *testing.T) {
	svc, store, _ := fixture()
	id := activatedAssessment(t, svc, store)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)
	if err := svc.SubmitSelf(context.Background(), subject, id, selfEntries()); err != nil {
		t.Fatalf("submit self: %v", err)
	}

	stranger := auth.NewActor("lead-9", auth.RoleLeader)
	if err := svc.SubmitLeader(context.Background(), stranger, id, selfEntries()); KindOf(err) != KindPermission {
		t.Fatalf("expected permission error for foreign leader, got %v", err)
	}

	leader := auth.NewActor("lead-1", auth.RoleLeader)
	if err := svc.SubmitLeader(context.Background(), leader, id, selfEntries()); err != nil {
		t.Fatalf("submit leader: %v", err)
	}
	if store.assessments[id].Status != StatusDiscussion {
		t.Fatalf("expected discussion, got %s", store.assessments[id].Status)
	}
}

func TestFinalizeTieBreakAndFeedback(t *testing.T) {
	svc, store, notifier := fixture()
	id := activatedAssessment(t, svc, store)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)
	leader := auth.NewActor("lead-1", auth.RoleLeader)
	ctx := context.Background()

	if err := svc.SubmitSelf(ctx, subject, id, []ScoreEntry{
		{CompetencyID: "c1", Score: 5},
		{CompetencyID: "c2", Score: 5},
	}); err != nil {
		t.Fatalf("submit self: %v", err)
	}
	if err := svc.SubmitLeader(ctx, leader, id, []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c2", Score: 2},
	}); err != nil {
		t.Fatalf("submit leader: %v", err)
	}

	// c1 agreed upward in discussion, c2 keeps the leader score
	if err := svc.Finalize(ctx, leader, id, []FinalEntry{
		{CompetencyID: "c1", Score: intPtr(4)},
	}, ""); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	write := store.applied[len(store.applied)-1]
	if write.Entries["c1"].Score != 4 {
		t.Fatalf("expected agreed score 4, got %d", write.Entries["c1"].Score)
	}
	if write.Entries["c2"].Score != 2 {
		t.Fatalf("expected leader score 2, got %d", write.Entries["c2"].Score)
	}
	if write.Feedback == nil || *write.Feedback != DefaultFeedback {
		t.Fatalf("expected default feedback, got %v", write.Feedback)
	}
	if store.assessments[id].Status != StatusDone {
		t.Fatalf("expected done, got %s", store.assessments[id].Status)
	}

	found := false
	for _, sent := range notifier.sent {
		if sent == "assessment_finalized:emp-1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected finalize notification, got %v", notifier.sent)
	}

	if err := svc.Finalize(ctx, leader, id, nil, ""); KindOf(err) != KindState {
		t.Fatalf("expected state error finalizing done assessment, got %v", err)
	}
}

func TestGetAssessmentViewDiscussionDefaults(t *testing.T) {
	svc, store, _ := fixture()
	id := activatedAssessment(t, svc, store)
	subject := auth.NewActor("emp-1", auth.RoleEmployee)
	leader := auth.NewActor("lead-1", auth.RoleLeader)
	ctx := context.Background()

	if err := svc.SubmitSelf(ctx, subject, id, selfEntries()); err != nil {
		t.Fatalf("submit self: %v", err)
	}
	if err := svc.SubmitLeader(ctx, leader, id, []ScoreEntry{
		{CompetencyID: "c1", Score: 3},
		{CompetencyID: "c2", Score: 4},
	}); err != nil {
		t.Fatalf("submit leader: %v", err)
	}

	view, err := svc.GetAssessmentView(ctx, subject, id)
	if err != nil {
		t.Fatalf("get view: %v", err)
	}
	for _, detail := range view.Details {
		if detail.FinalScore == nil {
			t.Fatalf("expected final score defaulted from leader in discussion for %s", detail.CompetencyID)
		}
		if *detail.FinalScore != *detail.LeaderScore {
			t.Fatalf("expected defaulted final to equal leader score for %s", detail.CompetencyID)
		}
	}
	// persisted rows stay untouched
	for _, detail := range store.details[id] {
		if detail.FinalScore != nil {
			t.Fatal("display defaulting must not persist final scores")
		}
	}

	stranger := auth.NewActor("emp-9", auth.RoleEmployee)
	if _, err := svc.GetAssessmentView(ctx, stranger, id); KindOf(err) != KindPermission {
		t.Fatalf("expected permission error for stranger, got %v", err)
	}
}
