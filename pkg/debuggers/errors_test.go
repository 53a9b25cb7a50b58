package debuggers_test

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/solo-io/dlvdap/pkg/debuggers"
)

var _ = Describe("errors", func() {
	It("finds the kind through wrapping", func() {
		err := debuggers.Errorf(debuggers.KindToolNotFound, "couldn't find %v", "dlv")
		wrapped := errors.Wrap(err, "launching")
		Expect(debuggers.KindOf(wrapped)).To(Equal(debuggers.KindToolNotFound))
		Expect(debuggers.IsKind(wrapped, debuggers.KindToolNotFound)).To(BeTrue())
		Expect(wrapped.Error()).To(Equal("launching: couldn't find dlv"))
	})

	It("keeps the cause reachable", func() {
		_, statErr := os.Stat("/does/not/exist")
		err := debuggers.Wrapf(debuggers.KindInvalidProgramPath, statErr, "bad program")
		Expect(os.IsNotExist(errors.Cause(err))).To(BeTrue())
		Expect(errors.Is(err, statErr)).To(BeTrue())
	})

	It("reports unknown for foreign errors", func() {
		Expect(debuggers.KindOf(errors.New("plain"))).To(Equal(debuggers.KindUnknown))
		Expect(debuggers.IsKind(nil, debuggers.KindUnknown)).To(BeFalse())
	})

	It("names every kind", func() {
		Expect(debuggers.KindMissingAttribute.String()).To(Equal("MissingAttribute"))
		Expect(debuggers.KindTerminationFailure.String()).To(Equal("TerminationFailure"))
		Expect(debuggers.NewError(debuggers.KindSpawnFailure, nil).Error()).To(Equal("SpawnFailure"))
	})
})

var _ = Describe("endpoint", func() {
	It("formats addresses", func() {
		Expect(debuggers.Endpoint{Host: "127.0.0.1", Port: 2345}.Address()).To(Equal("127.0.0.1:2345"))
		Expect(debuggers.Endpoint{Host: "::1", Port: 2345}.Address()).To(Equal("[::1]:2345"))
	})
})
