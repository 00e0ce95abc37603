// Package fileutil holds file permission constants shared by commands that
// write documents back to disk.
package fileutil

import "os"

// OwnerReadWrite is the permission mode for written spec files. API
// documents can describe internal surfaces, so keep them owner-only.
const OwnerReadWrite os.FileMode = 0o600
