package appversion

import (
	"bytes"
	"io"
)

// Set at link time via -ldflags "-X ...".
var (
	Version    = "devel"
	Commit     = ""
	CommitDate = ""
	TreeState  = ""
)

func Print(w io.Writer) (int, error) {
	var buf bytes.Buffer
	buf.Grow(64)
	buf.WriteString(Version)
	buf.WriteByte('\n')
	if Commit != "" {
		buf.WriteString("commit=")
		buf.WriteString(Commit)
		buf.WriteByte('\n')
	}
	if CommitDate != "" {
		buf.WriteString("commitDate=")
		buf.WriteString(CommitDate)
		buf.WriteByte('\n')
	}
	if TreeState != "" {
		buf.WriteString("treeState=")
		buf.WriteString(TreeState)
		buf.WriteByte('\n')
	}
	return w.Write(buf.Bytes())
}
