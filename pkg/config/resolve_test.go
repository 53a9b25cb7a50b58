package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/solo-io/dlvdap/pkg/config"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/options"
)

var _ = Describe("Resolve", func() {

	var dir string

	BeforeEach(func() {
		var err error
		dir, err = ioutil.TempDir("", "dlvdap-resolve")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	writeFile := func(name string) string {
		p := filepath.Join(dir, name)
		Expect(ioutil.WriteFile(p, []byte("package main\n"), 0644)).To(Succeed())
		return p
	}

	It("requires a program", func() {
		_, err := config.Resolve(&config.DebugConfiguration{})
		Expect(debuggers.KindOf(err)).To(Equal(debuggers.KindMissingAttribute))
	})

	It("rejects paths that don't exist", func() {
		_, err := config.Resolve(&config.DebugConfiguration{Program: "/does/not/exist"})
		Expect(debuggers.KindOf(err)).To(Equal(debuggers.KindInvalidProgramPath))
		Expect(err.Error()).To(ContainSubstring("/does/not/exist"))
	})

	It("rejects files that are not go sources", func() {
		_, err := config.Resolve(&config.DebugConfiguration{Program: writeFile("file.txt")})
		Expect(debuggers.KindOf(err)).To(Equal(debuggers.KindUnsupportedProgramKind))
	})

	It("accepts a package directory", func() {
		resolved, err := config.Resolve(&config.DebugConfiguration{Program: dir})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.IsDirectory).To(BeTrue())
		Expect(resolved.Directory).To(Equal(dir))
		Expect(resolved.Program).To(Equal(dir))
	})

	It("runs a go file from its directory", func() {
		main := writeFile("main.go")
		resolved, err := config.Resolve(&config.DebugConfiguration{Program: main})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.IsDirectory).To(BeFalse())
		Expect(resolved.Directory).To(Equal(dir))
		Expect(resolved.Program).To(Equal(main))
	})

	It("defaults the host even when validation fails", func() {
		cfg := &config.DebugConfiguration{}
		config.Resolve(cfg)
		Expect(cfg.Host).To(Equal(options.DefaultHost))
	})

	It("keeps an explicit host", func() {
		cfg := &config.DebugConfiguration{Program: dir, Host: "0.0.0.0"}
		_, err := config.Resolve(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Host).To(Equal("0.0.0.0"))
	})
})
