package uriutil_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"bennypowers.dev/classwrap/internal/uriutil"
	"github.com/stretchr/testify/assert"
)

func TestPathToURI(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		windows bool
	}{
		{name: "absolute", path: "/home/user/project", want: "file:///home/user/project"},
		{name: "root", path: "/", want: "file:///"},
		{name: "spaces", path: "/home/user/my project", want: "file:///home/user/my%20project"},
		{name: "unicode", path: "/home/文件", want: "file:///home/%E6%96%87%E4%BB%B6"},
		{name: "drive", path: `C:\project\index.html`, want: "file:///C:/project/index.html", windows: true},
		{name: "drive with spaces", path: `C:\Foo Bar`, want: "file:///C:/Foo%20Bar", windows: true},
		{name: "UNC", path: `\\server\share\a.css`, want: "file://server/share/a.css", windows: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.windows != (runtime.GOOS == "windows") {
				t.Skip("platform-specific")
			}
			assert.Equal(t, tt.want, uriutil.PathToURI(tt.path))
		})
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		windows bool
	}{
		{name: "absolute", uri: "file:///home/user/a.jsx", want: "/home/user/a.jsx"},
		{name: "percent-encoded", uri: "file:///home/my%20project/a.css", want: "/home/my project/a.css"},
		{name: "localhost", uri: "file://localhost/home/a.css", want: "/home/a.css"},
		{name: "not a file URI", uri: "/already/a/path.html", want: "/already/a/path.html"},
		{name: "drive", uri: "file:///C:/proj", want: `C:\proj`, windows: true},
		{name: "encoded drive", uri: "file:///c%3A/proj/a.html", want: `c:\proj\a.html`, windows: true},
		{name: "UNC", uri: "file://server/share/a.css", want: `\\server\share\a.css`, windows: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.windows != (runtime.GOOS == "windows") {
				t.Skip("platform-specific")
			}
			assert.Equal(t, tt.want, uriutil.URIToPath(tt.uri))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	paths := []string{"/home/user/components/Card.jsx", "/tmp/with space/文件.html"}
	if runtime.GOOS == "windows" {
		paths = []string{`C:\Users\user\site\index.html`, `D:\Foo Bar\a.css`}
	}
	for _, p := range paths {
		assert.Equal(t, filepath.Clean(p), filepath.Clean(uriutil.URIToPath(uriutil.PathToURI(p))))
	}
}

func TestIsFileURI(t *testing.T) {
	assert.True(t, uriutil.IsFileURI("file:///a.html"))
	assert.True(t, uriutil.IsFileURI("FILE:///a.html"))
	assert.False(t, uriutil.IsFileURI("untitled:Untitled-1"))
}
