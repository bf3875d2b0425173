package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/black-desk/fsnotifier/pkg/fsnotifier/config"
	"github.com/black-desk/fsnotifier/pkg/types"
	. "github.com/black-desk/lib/go/gomega-helper"
	"github.com/go-playground/validator/v10"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Configuration", func() {
	Context("load the example configuration", func() {
		var (
			cfg *config.Config
			err error
		)

		BeforeEach(func() {
			var content []byte
			content, err = os.ReadFile("../../../misc/config/example.yaml")
			if err != nil {
				Fail(fmt.Sprintf("Failed to read configuration: %s", err.Error()))
			}

			cfg, err = config.New(config.WithContent(content))
		})

		It("should success.", func() {
			Expect(err).To(BeNil())
			Expect(cfg.Policy).To(Equal(types.NamePolicyLenient))
			Expect(cfg.QueueSize).To(Equal(64))
			Expect(cfg.Metrics.Listen).To(Equal("127.0.0.1:9477"))
			Expect(cfg.Watches).To(HaveLen(2))
			Expect(cfg.Watches[0].Mask).To(Equal(
				types.InCreate | types.InDelete | types.InMovedFrom | types.InMovedTo,
			))
			Expect(cfg.Watches[1].Mask).To(Equal(
				types.InCloseWrite | types.InMovedTo,
			))
		})
	})

	Context("load the default configuration", func() {
		var (
			cfg *config.Config
			err error
		)

		BeforeEach(func() {
			cfg, err = config.New(config.WithContent([]byte(config.DefaultConfig)))
		})

		It("should watch the working directory for all events.", func() {
			Expect(err).To(BeNil())

			wd, err := os.Getwd()
			Expect(err).To(BeNil())

			Expect(cfg.Watches).To(HaveLen(1))
			Expect(cfg.Watches[0].Path).To(Equal(wd))
			Expect(cfg.Watches[0].Mask).To(Equal(types.InAllEvents))
			Expect(cfg.QueueSize).To(Equal(config.DefaultQueueSize))
			Expect(cfg.Metrics).To(BeNil())
		})
	})

	Context("load a strict configuration", func() {
		It("should select the strict name policy.", func() {
			cfg, err := config.New(config.WithContent([]byte(`
version: 1
name-policy: strict
queue-size: 1
watches:
  - path: /tmp/a
    events: [all]
`)))
			Expect(err).To(BeNil())
			Expect(cfg.Policy).To(Equal(types.NamePolicyStrict))
			Expect(cfg.QueueSize).To(Equal(1))
			Expect(cfg.Watches[0].Path).To(Equal(filepath.Clean("/tmp/a")))
			Expect(cfg.Watches[0].String()).To(ContainSubstring("/tmp/a"))
		})
	})

	DescribeTable("load from invalid configuration",
		func(content string, check func(error)) {
			_, err := config.New(config.WithContent([]byte(content)))
			Expect(err).To(HaveOccurred())
			check(err)
		},
		Entry("wrong type", `
version: 1
queue-size: many
watches:
  - path: /tmp
`, func(err error) {
			Expect(err).To(MatchErr(new(yaml.TypeError)))
		}),
		Entry("wrong version", `
version: 2
watches:
  - path: /tmp
`, func(err error) {
			Expect(err).To(MatchErr(validator.ValidationErrors{}))
		}),
		Entry("no watches", `
version: 1
`, func(err error) {
			Expect(err).To(MatchErr(validator.ValidationErrors{}))
		}),
		Entry("unknown name policy", `
version: 1
name-policy: sloppy
watches:
  - path: /tmp
`, func(err error) {
			Expect(err).To(MatchErr(validator.ValidationErrors{}))
		}),
		Entry("bad metrics address", `
version: 1
metrics:
  listen: nowhere
watches:
  - path: /tmp
`, func(err error) {
			Expect(err).To(MatchErr(validator.ValidationErrors{}))
		}),
		Entry("unknown event name", `
version: 1
watches:
  - path: /tmp
    events: [create, explode]
`, func(err error) {
			Expect(err).To(MatchErr(new(types.ErrUnknownMaskName)))
		}),
	)

	It("should reject missing content", func() {
		_, err := config.New()
		Expect(err).To(MatchErr(config.ErrContentMissing))
	})

	It("should reject a nil logger", func() {
		_, err := config.New(
			config.WithContent([]byte(config.DefaultConfig)),
			config.WithLogger(nil),
		)
		Expect(err).To(MatchErr(config.ErrLoggerMissing))
	})
})

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Configuration Suite")
}
