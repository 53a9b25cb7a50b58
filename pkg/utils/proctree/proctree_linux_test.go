package proctree_test

import (
	"context"
	"io/ioutil"
	"os/exec"
	"strconv"
	"strings"
	"syscall"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/solo-io/dlvdap/pkg/debuggers"
	"github.com/solo-io/dlvdap/pkg/utils/proctree"
)

type shellServer struct {
	cmd    *exec.Cmd
	exited chan struct{}
}

func startShell(script string) *shellServer {
	cmd := exec.Command("sh", "-c", script)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	Expect(cmd.Start()).To(Succeed())
	s := &shellServer{cmd: cmd, exited: make(chan struct{})}
	go func() {
		cmd.Wait()
		close(s.exited)
	}()
	return s
}

func (s *shellServer) Pid() int                     { return s.cmd.Process.Pid }
func (s *shellServer) Endpoint() debuggers.Endpoint { return debuggers.Endpoint{} }
func (s *shellServer) Cmd() *exec.Cmd               { return s.cmd }
func (s *shellServer) Exited() <-chan struct{}      { return s.exited }

// alive treats zombies as dead: nothing may reap orphans inside a container
func alive(pid int) bool {
	buf, err := ioutil.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return false
	}
	stat := string(buf)
	fields := strings.Fields(stat[strings.LastIndexByte(stat, ')')+1:])
	return len(fields) > 0 && fields[0] != "Z"
}

var _ = Describe("process trees", func() {

	var server *shellServer

	BeforeEach(func() {
		server = startShell("sleep 60 & sleep 60 & wait")
	})

	AfterEach(func() {
		syscall.Kill(-server.Pid(), syscall.SIGKILL)
	})

	It("lists the children of a process", func() {
		Eventually(func() ([]int, error) {
			return proctree.Descendants(server.Pid())
		}, 2*time.Second).Should(HaveLen(2))
	})

	It("kills a process and its children", func() {
		var children []int
		Eventually(func() int {
			children, _ = proctree.Descendants(server.Pid())
			return len(children)
		}, 2*time.Second).Should(Equal(2))

		killer := proctree.NewKiller(5 * time.Second)
		Expect(killer.Kill(context.Background(), server)).To(Succeed())
		Expect(server.Exited()).To(BeClosed())

		for _, child := range children {
			Eventually(func() bool { return alive(child) }, 2*time.Second).Should(BeFalse())
		}
	})

	It("reports a timeout as a termination failure", func() {
		stuck := &shellServer{cmd: server.cmd, exited: make(chan struct{})}
		killer := proctree.NewKiller(100 * time.Millisecond)
		err := killer.Kill(context.Background(), stuck)
		Expect(debuggers.IsKind(err, debuggers.KindTerminationFailure)).To(BeTrue())
	})
})
