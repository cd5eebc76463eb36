package service

import (
	"context"
	"fmt"
	"log/slog"

	"foilctf/internal/notifications"
	"foilctf/internal/observability"
	"foilctf/internal/repository"
)

// Violation kinds reported by InvariantAuditor.
const (
	ViolationCountDrift         = "count_drift"
	ViolationCaptainNotMember   = "captain_not_member"
	ViolationOrphanMembership   = "orphan_membership"
	ViolationTeamPointer        = "team_pointer"
	ViolationOrphanJoinRequest  = "orphan_join_request"
	ViolationSelfFriendship     = "self_friendship"
	ViolationFriendAndRequest   = "friend_and_request"
	ViolationDuplicateFriendReq = "duplicate_friend_request"
	ViolationUnpublished        = "unpublished_notification"
)

// Violation is one broken consistency rule.
type Violation struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// AuditReport is the result of one audit pass.
type AuditReport struct {
	Violations []Violation `json:"violations"`
}

// OK reports whether the audit found nothing.
func (r *AuditReport) OK() bool {
	return len(r.Violations) == 0
}

// Kinds returns the number of violations per kind.
func (r *AuditReport) Kinds() map[string]int {
	out := make(map[string]int)
	for _, v := range r.Violations {
		out[v.Kind]++
	}
	return out
}

func (r *AuditReport) add(kind, subject, format string, args ...interface{}) {
	r.Violations = append(r.Violations, Violation{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)})
}

// InvariantAuditor recomputes the team and friendship invariants from the
// stored rows.
type InvariantAuditor struct {
	runner
}

// NewInvariantAuditor returns a new InvariantAuditor.
func NewInvariantAuditor(store *repository.Store) *InvariantAuditor {
	return &InvariantAuditor{runner{store: store}}
}

// Audit checks every invariant and reports what it found. Each violation
// is also counted in the invariant metric.
func (a *InvariantAuditor) Audit(ctx context.Context) (report *AuditReport, err error) {
	span, ctx := observability.StartSpan(ctx, "InvariantAuditor.Audit")
	defer span.Finish(&err)

	report = &AuditReport{}
	err = a.run(ctx, "audit", func(tx *repository.Store) (*notifications.Delivery, error) {
		if err := auditTeams(ctx, tx, report); err != nil {
			return nil, err
		}
		if err := auditFriends(ctx, tx, report); err != nil {
			return nil, err
		}
		return nil, auditNotifications(ctx, tx, report)
	})
	if err != nil {
		return nil, err
	}

	for _, v := range report.Violations {
		observability.InvariantViolations.WithLabelValues(v.Kind).Inc()
		observability.GlobalLogger.WarnContext(ctx, "invariant violation",
			slog.String("kind", v.Kind),
			slog.String("subject", v.Subject),
			slog.String("detail", v.Detail))
	}
	return report, nil
}

func auditTeams(ctx context.Context, tx *repository.Store, report *AuditReport) error {
	teams, err := tx.Teams.All(ctx)
	if err != nil {
		return err
	}
	edges, err := tx.Members.All(ctx)
	if err != nil {
		return err
	}
	teamed, err := tx.Users.ListWithTeam(ctx)
	if err != nil {
		return err
	}
	requests, err := tx.JoinRequests.All(ctx)
	if err != nil {
		return err
	}

	teamByName := make(map[string]bool, len(teams))
	for _, t := range teams {
		teamByName[t.Name] = true
	}

	counts := make(map[string]int, len(teams))
	edgeOf := make(map[string]string, len(edges))
	for _, e := range edges {
		counts[e.TeamName]++
		edgeOf[e.MemberName] = e.TeamName
		if !teamByName[e.TeamName] {
			report.add(ViolationOrphanMembership, e.MemberName, "member of missing team %q", e.TeamName)
		}
	}

	for _, t := range teams {
		if t.MembersCount != counts[t.Name] {
			report.add(ViolationCountDrift, t.Name, "members_count %d, edges %d", t.MembersCount, counts[t.Name])
		}
		if edgeOf[t.CaptainName] != t.Name {
			report.add(ViolationCaptainNotMember, t.Name, "captain %q has no membership edge", t.CaptainName)
		}
	}

	pointer := make(map[string]string, len(teamed))
	for _, u := range teamed {
		pointer[u.Username] = *u.TeamName
		if edgeOf[u.Username] != *u.TeamName {
			report.add(ViolationTeamPointer, u.Username, "team_name %q, membership %q", *u.TeamName, edgeOf[u.Username])
		}
	}
	for member, team := range edgeOf {
		if _, ok := pointer[member]; !ok {
			report.add(ViolationTeamPointer, member, "team_name unset, membership %q", team)
		}
	}

	for _, r := range requests {
		if !teamByName[r.TeamName] {
			report.add(ViolationOrphanJoinRequest, r.Username, "request to missing team %q", r.TeamName)
		}
	}
	return nil
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}

func auditFriends(ctx context.Context, tx *repository.Store, report *AuditReport) error {
	friends, err := tx.Friends.All(ctx)
	if err != nil {
		return err
	}
	requests, err := tx.FriendRequests.All(ctx)
	if err != nil {
		return err
	}

	friendPairs := make(map[string]bool, len(friends))
	for _, f := range friends {
		if f.Username1 == f.Username2 {
			report.add(ViolationSelfFriendship, f.Username1, "friendship with self")
		}
		friendPairs[pairKey(f.Username1, f.Username2)] = true
	}

	requestPairs := make(map[string]bool, len(requests))
	for _, r := range requests {
		key := pairKey(r.SenderName, r.ReceiverName)
		if r.SenderName == r.ReceiverName {
			report.add(ViolationSelfFriendship, r.SenderName, "friend request to self")
		}
		if friendPairs[key] {
			report.add(ViolationFriendAndRequest, r.SenderName, "pending request to friend %q", r.ReceiverName)
		}
		if requestPairs[key] {
			report.add(ViolationDuplicateFriendReq, r.SenderName, "requests both ways with %q", r.ReceiverName)
		}
		requestPairs[key] = true
	}
	return nil
}

// auditNotifications flags notifications whose fan-out never finished.
// Committed rows are always published, so any leftover means a write path
// bypassed the dispatcher.
func auditNotifications(ctx context.Context, tx *repository.Store, report *AuditReport) error {
	n, err := tx.Notifications.CountUnpublished(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		report.add(ViolationUnpublished, "notifications", "%d unpublished", n)
	}
	return nil
}

// RepairCounts rewrites every drifted members_count from the membership
// edges and returns how many teams were fixed.
func (a *InvariantAuditor) RepairCounts(ctx context.Context) (repaired int, err error) {
	span, ctx := observability.StartSpan(ctx, "InvariantAuditor.RepairCounts")
	defer span.Finish(&err)

	err = a.run(ctx, "audit.repair_counts", func(tx *repository.Store) (*notifications.Delivery, error) {
		teams, err := tx.Teams.All(ctx)
		if err != nil {
			return nil, err
		}
		counts, err := tx.Members.CountByTeam(ctx)
		if err != nil {
			return nil, err
		}
		for _, t := range teams {
			if t.MembersCount == counts[t.Name] {
				continue
			}
			if err := tx.Teams.SetMembersCount(ctx, t.Name, counts[t.Name]); err != nil {
				return nil, err
			}
			observability.GlobalLogger.InfoContext(ctx, "repaired members_count",
				slog.String("team", t.Name),
				slog.Int("from", t.MembersCount),
				slog.Int("to", counts[t.Name]))
			repaired++
		}
		return nil, nil
	})
	if err != nil {
		return 0, err
	}
	return repaired, nil
}
