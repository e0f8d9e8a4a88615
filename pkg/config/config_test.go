package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/cobra"

	"github.com/recruitkit/cvrag/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("InitViper", func() {
	var tmpDir string

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "config-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(tmpDir)
	})

	It("returns defaults when no config file exists", func() {
		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())

		defaults := config.NewDefaultConfig()
		Expect(cfg.API.Listen).To(Equal(defaults.API.Listen))
		Expect(cfg.Ingest.Suffix).To(Equal(defaults.Ingest.Suffix))
		Expect(cfg.Ingest.Concurrency).To(Equal(defaults.Ingest.Concurrency))
		Expect(cfg.Embedding.Provider).To(Equal(defaults.Embedding.Provider))
		Expect(cfg.Embedding.Dimensions).To(Equal(defaults.Embedding.Dimensions))
		Expect(cfg.VectorStore.Provider).To(Equal(defaults.VectorStore.Provider))
		Expect(cfg.VectorStore.Collection).To(Equal(defaults.VectorStore.Collection))
		Expect(cfg.Generation.Model).To(Equal(defaults.Generation.Model))
		Expect(cfg.Query.TopK).To(Equal(defaults.Query.TopK))
	})

	It("overrides defaults with config.toml values", func() {
		data := `[api]
listen = ":9090"

[embedding]
provider = "openai"
model = "text-embedding-3-small"
dimensions = 1536

[query]
top_k = 8
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())

		cfg, err := config.Load(v)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.API.Listen).To(Equal(":9090"))
		Expect(cfg.Embedding.Provider).To(Equal("openai"))
		Expect(cfg.Embedding.Model).To(Equal("text-embedding-3-small"))
		Expect(cfg.Embedding.Dimensions).To(Equal(uint(1536)))
		Expect(cfg.Query.TopK).To(Equal(8))

		// Untouched sections keep their defaults.
		defaults := config.NewDefaultConfig()
		Expect(cfg.VectorStore.Provider).To(Equal(defaults.VectorStore.Provider))
	})

	It("lets environment variables override the config file", func() {
		data := `[api]
listen = ":9090"
`
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(data), 0o600)
		Expect(err).NotTo(HaveOccurred())

		os.Setenv("CVRAG_API_LISTEN", ":7070")
		defer os.Unsetenv("CVRAG_API_LISTEN")

		v, err := config.InitViper(tmpDir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":7070"))
	})

	It("fails on malformed TOML", func() {
		err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not [valid toml"), 0o600)
		Expect(err).NotTo(HaveOccurred())

		_, err = config.InitViper(tmpDir)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Flag registry", func() {
	It("registers flags with defaults from NewDefaultConfig", func() {
		cmd := &cobra.Command{Use: "test"}

		var listen string
		config.AddStringFlag(cmd, config.Flags, config.FlagAPIListen, &listen)

		f := cmd.Flags().Lookup("listen")
		Expect(f).NotTo(BeNil())
		Expect(f.DefValue).To(Equal(config.NewDefaultConfig().API.Listen))
		Expect(f.Shorthand).To(Equal("l"))
	})

	It("binds registered flags into the viper precedence chain", func() {
		cmd := &cobra.Command{Use: "test"}

		var topK int
		config.AddIntFlag(cmd, config.Flags, config.FlagQueryTopK, &topK)
		Expect(cmd.Flags().Set("top-k", "9")).To(Succeed())

		v, err := config.InitViper("")
		Expect(err).NotTo(HaveOccurred())
		config.BindRegisteredFlags(v, cmd, config.Flags, []string{config.FlagQueryTopK})

		Expect(v.GetInt("query.top_k")).To(Equal(9))
	})

	It("ignores unknown registry keys", func() {
		cmd := &cobra.Command{Use: "test"}

		var s string
		config.AddStringFlag(cmd, config.Flags, "no-such-key", &s)
		Expect(cmd.Flags().HasFlags()).To(BeFalse())
	})
})
