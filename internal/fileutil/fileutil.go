package fileutil

import "os"

// OwnerReadWrite is the file permission mode for payload snapshot files
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// ReadableByAll is the file permission mode for generated report files
// intended to be read by CI systems and other users.
const ReadableByAll os.FileMode = 0o644

// OwnerAll is the directory permission mode for snapshot and report folders.
const OwnerAll os.FileMode = 0o755
