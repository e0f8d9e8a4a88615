package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/recruitkit/cvrag/pkg/blob"
	"github.com/recruitkit/cvrag/pkg/blob/fs"
)

func TestFSFetcher(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FS Fetcher Suite")
}

var _ = Describe("Fetcher", func() {
	var root string

	BeforeEach(func() {
		root = GinkgoT().TempDir()
		Expect(os.MkdirAll(filepath.Join(root, "cvs", "2026"), 0o755)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(root, "cvs", "2026", "jane.pdf"), []byte("pdf-bytes"), 0o644)).To(Succeed())
	})

	It("fetches an object by bucket and name", func() {
		f := fs.NewFetcher(root)

		data, err := f.Fetch(context.Background(), "cvs", "2026/jane.pdf")
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte("pdf-bytes")))
	})

	It("returns ErrNotFound for a missing object", func() {
		f := fs.NewFetcher(root)

		_, err := f.Fetch(context.Background(), "cvs", "missing.pdf")
		Expect(err).To(MatchError(blob.ErrNotFound))
	})

	It("refuses object names that escape the bucket", func() {
		f := fs.NewFetcher(root)

		_, err := f.Fetch(context.Background(), "cvs", "../../etc/passwd")
		Expect(err).To(MatchError(blob.ErrNotFound))
	})
})
