package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/options"
)

var _ = Describe("Settings", func() {

	var (
		home    string
		oldHome string
	)

	BeforeEach(func() {
		var err error
		home, err = ioutil.TempDir("", "dlvdap-home")
		Expect(err).NotTo(HaveOccurred())
		oldHome = os.Getenv("HOME")
		os.Setenv("HOME", home)
		homedir.DisableCache = true
	})

	AfterEach(func() {
		os.Setenv("HOME", oldHome)
		os.RemoveAll(home)
	})

	It("reads an explicit file", func() {
		p := filepath.Join(home, "settings.yaml")
		Expect(ioutil.WriteFile(p, []byte(`
dlv_tool_path: /go/bin/dlv
settle_delay: 2s
readiness_timeout: 3s
kill_grace: 1s
verbose: true
log_commands: true
`), 0644)).To(Succeed())

		s, err := config.ReadSettings(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.DlvToolPath).To(Equal("/go/bin/dlv"))
		Expect(s.SettleDelay).To(Equal(2 * time.Second))
		Expect(s.ReadinessTimeout).To(Equal(3 * time.Second))
		Expect(s.KillGrace).To(Equal(time.Second))
		Expect(s.Verbose).To(BeTrue())
		Expect(s.LogCommands).To(BeTrue())
	})

	It("never settles for less than the default delay", func() {
		p := filepath.Join(home, "settings.yaml")
		Expect(ioutil.WriteFile(p, []byte("settle_delay: 10ms\n"), 0644)).To(Succeed())

		s, err := config.ReadSettings(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.SettleDelay).To(Equal(options.DefaultSettleDelay))
		Expect(s.KillGrace).To(Equal(options.DefaultKillGrace))
	})

	It("writes a default file into the settings dir", func() {
		s, err := config.ReadSettings("")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(config.DefaultSettings()))

		_, err = os.Stat(filepath.Join(home, options.SettingsDirName, options.SettingsFileName))
		Expect(err).NotTo(HaveOccurred())
	})
})
