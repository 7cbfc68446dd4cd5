package subdag_test

import (
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"gitlab.com/dagmesh/ordering-go/pkg/dagcore"
	"gitlab.com/dagmesh/ordering-go/pkg/dagview"
	. "gitlab.com/dagmesh/ordering-go/pkg/subdag"
	"gitlab.com/dagmesh/ordering-go/pkg/tests"
)

const baseRound = uint64(5)

// fixture builds the dag of the happy path: two certificates at round 5
// below the frontier, four at round 6, two at round 7, the leader at round 8
// and a configurable number of round 9 certificates referencing the leader.
type fixture struct {
	committee  *dagcore.Committee
	validators []dagcore.ValidatorID
	view       *dagview.View
	leader     dagcore.Certificate
	round6     []dagcore.Certificate
	round7     []dagcore.Certificate
}

func newFixture(votesForLeader int) *fixture {
	f := &fixture{view: dagview.NewView()}
	f.committee, f.validators = tests.NewCommittee([]uint64{1, 1, 1, 1})

	var frontierIDs []dagcore.CertID
	for i := 0; i < 2; i++ {
		c := dagview.NewCertificate(5, f.validators[i], nil, []dagcore.TransmissionID{tests.Transmission(uint64(i))})
		Expect(f.view.Insert(c)).To(Succeed())
		frontierIDs = append(frontierIDs, c.ID())
	}

	var round6IDs []dagcore.CertID
	for i := 0; i < 4; i++ {
		c := dagview.NewCertificate(6, f.validators[i], frontierIDs, []dagcore.TransmissionID{tests.Transmission(uint64(10 + i))})
		Expect(f.view.Insert(c)).To(Succeed())
		round6IDs = append(round6IDs, c.ID())
		f.round6 = append(f.round6, c)
	}

	p1 := dagview.NewCertificate(7, f.validators[0], round6IDs[:2], []dagcore.TransmissionID{tests.Transmission(20)})
	p2 := dagview.NewCertificate(7, f.validators[1], round6IDs[2:], []dagcore.TransmissionID{tests.Transmission(21)})
	Expect(f.view.Insert(p1)).To(Succeed())
	Expect(f.view.Insert(p2)).To(Succeed())
	f.round7 = []dagcore.Certificate{p1, p2}

	f.leader = dagview.NewCertificate(8, f.validators[2], []dagcore.CertID{p1.ID(), p2.ID()}, []dagcore.TransmissionID{tests.Transmission(30)})
	Expect(f.view.Insert(f.leader)).To(Succeed())

	for i := 0; i < 4; i++ {
		parents := []dagcore.CertID{}
		if i < votesForLeader {
			parents = append(parents, f.leader.ID())
		}
		c := dagview.NewCertificate(9, f.validators[i], parents, []dagcore.TransmissionID{tests.Transmission(uint64(40 + i))})
		Expect(f.view.Insert(c)).To(Succeed())
	}
	return f
}

var _ = Describe("Build", func() {
	Context("on the happy path dag with quorum support", func() {
		var f *fixture

		BeforeEach(func() {
			f = newFixture(3)
		})

		It("should return a subdag spanning rounds 6 to 8", func() {
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			Expect(sd.Rounds()).To(Equal([]uint64{6, 7, 8}))
			Expect(sd.BaseRound()).To(Equal(baseRound))
		})

		It("should place exactly the leader at the leader round", func() {
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			top := sd.Certificates(8)
			Expect(top).To(HaveLen(1))
			Expect(top[0].ID()).To(Equal(f.leader.ID()))
		})

		It("should be causally closed down to the frontier", func() {
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			for _, r := range sd.Rounds() {
				for _, c := range sd.Certificates(r) {
					Expect(c.Round()).To(Equal(r))
					if r == sd.Rounds()[0] {
						continue
					}
					for _, p := range c.Parents() {
						Expect(sd.Contains(p)).To(BeTrue())
					}
				}
			}
		})

		It("should place no certificate in two rounds", func() {
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			seen := make(map[dagcore.CertID]bool)
			total := 0
			for _, r := range sd.Rounds() {
				for _, c := range sd.Certificates(r) {
					Expect(seen[c.ID()]).To(BeFalse())
					seen[c.ID()] = true
					total++
				}
			}
			Expect(total).To(Equal(sd.NumCertificates()))
		})

		It("should produce structurally equal subdags on repeated builds", func() {
			first, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			second, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Equal(second)).To(BeTrue())
		})

		It("should not depend on the insertion order of the dag view", func() {
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).NotTo(HaveOccurred())

			reversed := dagview.NewView()
			var all []dagcore.Certificate
			for r := uint64(5); r <= 9; r++ {
				all = append(all, f.view.RoundCertificates(r)...)
			}
			for i := len(all) - 1; i >= 0; i-- {
				Expect(reversed.Insert(all[i])).To(Succeed())
			}
			other, err := Build(f.leader, baseRound, f.committee, reversed)
			Expect(err).NotTo(HaveOccurred())
			Expect(sd.Equal(other)).To(BeTrue())
		})
	})

	Context("when the leader lacks quorum support", func() {
		It("should return QuorumNotReached", func() {
			f := newFixture(1)
			sd, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.QuorumNotReachedError{}))
			Expect(dagcore.Recoverable(err)).To(BeTrue())
		})

		It("should not count an equivocating author twice", func() {
			f := newFixture(2)
			// a second round 9 certificate by an already counted author
			extra := dagview.NewCertificate(9, f.validators[0], []dagcore.CertID{f.leader.ID(), f.round7[0].ID()}, nil)
			Expect(f.view.Insert(extra)).To(Succeed())
			_, err := Build(f.leader, baseRound, f.committee, f.view)
			Expect(err).To(BeAssignableToTypeOf(&dagcore.QuorumNotReachedError{}))
		})
	})

	Context("when an ancestor cannot be resolved", func() {
		It("should return IncompleteDag", func() {
			f := newFixture(3)
			// rebuild the view without one round 7 certificate
			partial := dagview.NewView()
			for r := uint64(5); r <= 9; r++ {
				for _, c := range f.view.RoundCertificates(r) {
					if c.ID() == f.round7[1].ID() {
						continue
					}
					Expect(partial.Insert(c)).To(Succeed())
				}
			}
			sd, err := Build(f.leader, baseRound, f.committee, partial)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.IncompleteDagError{}))
			Expect(dagcore.Recoverable(err)).To(BeTrue())
		})
	})

	Context("when the leader is at or before the frontier", func() {
		It("should return StaleLeader", func() {
			f := newFixture(3)
			sd, err := Build(f.leader, 8, f.committee, f.view)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.StaleLeaderError{}))
			Expect(dagcore.Recoverable(err)).To(BeTrue())
		})
	})

	Context("when a certificate disagrees with its declared round", func() {
		It("should return RoundMismatch", func() {
			f := newFixture(3)
			liar := dagview.NewCertificate(6, f.validators[3], nil, []dagcore.TransmissionID{tests.Transmission(50)})
			Expect(f.view.Insert(liar)).To(Succeed())
			// a leader whose round 7 parent actually declares round 6
			leader := dagview.NewCertificate(8, f.validators[3], []dagcore.CertID{liar.ID()}, nil)
			Expect(f.view.Insert(leader)).To(Succeed())
			for i := 0; i < 3; i++ {
				vote := dagview.NewCertificate(9, f.validators[i], []dagcore.CertID{leader.ID()}, []dagcore.TransmissionID{tests.Transmission(uint64(60 + i))})
				Expect(f.view.Insert(vote)).To(Succeed())
			}
			sd, err := Build(leader, baseRound, f.committee, f.view)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.RoundMismatchError{}))
			Expect(dagcore.Recoverable(err)).To(BeFalse())
		})
	})

	Context("when a certificate lists itself among its parents", func() {
		It("should return InconsistentCertificate", func() {
			committee, validators := tests.NewCommittee([]uint64{1, 1, 1, 1})
			view := dagview.NewView()
			var self dagcore.CertID
			self[0] = 0xAA
			liar := dagview.NewCertificateWithID(self, 7, validators[0], []dagcore.CertID{self}, nil)
			Expect(view.Insert(liar)).To(Succeed())
			leader := dagview.NewCertificate(8, validators[1], []dagcore.CertID{liar.ID()}, nil)
			Expect(view.Insert(leader)).To(Succeed())
			sd, err := Build(leader, baseRound, committee, view)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.InconsistentCertificateError{}))
			Expect(dagcore.Recoverable(err)).To(BeFalse())
		})
	})

	Context("when a certificate references a descendant as its parent", func() {
		It("should return InconsistentCertificate", func() {
			committee, validators := tests.NewCommittee([]uint64{1, 1, 1, 1})
			view := dagview.NewView()
			// the round 7 certificate closes a cycle through the leader
			var cyclic dagcore.CertID
			cyclic[0] = 0xBB
			leader := dagview.NewCertificate(8, validators[1], []dagcore.CertID{cyclic}, nil)
			back := dagview.NewCertificateWithID(cyclic, 7, validators[0], []dagcore.CertID{leader.ID()}, nil)
			Expect(view.Insert(back)).To(Succeed())
			Expect(view.Insert(leader)).To(Succeed())
			sd, err := Build(leader, baseRound, committee, view)
			Expect(sd).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&dagcore.InconsistentCertificateError{}))
			Expect(dagcore.Recoverable(err)).To(BeFalse())
		})
	})

	Context("on a dag described in the text format", func() {
		It("should commit the closure of the leader", func() {
			description := `4
// two frontier certificates at round 5
0-5
1-5
0-6 0-5 1-5
1-6 0-5 1-5
0-7 0-6 1-6
1-7 0-6 1-6
2-8 0-7 1-7
0-9 2-8
1-9 2-8
3-9 2-8`
			view, committee, _, err := tests.ReadDag(strings.NewReader(description))
			Expect(err).NotTo(HaveOccurred())
			leader := view.RoundCertificates(8)[0]
			sd, err := Build(leader, baseRound, committee, view)
			Expect(err).NotTo(HaveOccurred())
			Expect(sd.Rounds()).To(Equal([]uint64{6, 7, 8}))
			Expect(sd.NumCertificates()).To(Equal(5))
		})
	})
})
