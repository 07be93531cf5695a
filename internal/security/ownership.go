package security

// CanModify decides whether subjectID may mutate a resource owned by
// ownerID. Kept as a single capability check so an override role can be
// added later without touching call sites.
func CanModify(subjectID, ownerID string) bool {
	return subjectID != "" && subjectID == ownerID
}
