// Package store provides persistence for install records and the publish
// journal.
package store

// InstallRecord describes where and as what an application is installed.
type InstallRecord struct {
	ID          int64
	AppName     string
	Publisher   string
	Version     string
	InstallDir  string
	InstalledAt string
}

// JournalEntry marks a completed publish step for a version at a commit.
type JournalEntry struct {
	ID          int64
	Version     string
	CommitSHA   string
	Step        string
	Detail      string
	CompletedAt string
}
