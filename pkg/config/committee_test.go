package config_test

import (
	"bytes"
	"encoding/hex"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "gitlab.com/dagmesh/ordering-go/pkg/config"
	"gitlab.com/dagmesh/ordering-go/pkg/tests"
)

var _ = Describe("Committee", func() {
	Describe("Store and Load", func() {
		It("should return the same committee", func() {
			committee, validators := tests.NewCommittee([]uint64{3, 1, 1, 2})

			var buf bytes.Buffer
			Expect(StoreCommittee(&buf, committee)).To(Succeed())

			loaded, err := LoadCommittee(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Size()).To(Equal(committee.Size()))
			Expect(loaded.TotalStake()).To(Equal(committee.TotalStake()))
			for _, v := range validators {
				Expect(loaded.StakeOf(v)).To(Equal(committee.StakeOf(v)))
			}
		})
	})

	Describe("Load", func() {
		It("should reject an id without a stake", func() {
			v := tests.Validator(0)
			_, err := LoadCommittee(strings.NewReader(hex.EncodeToString(v[:])))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an id that is not hex", func() {
			_, err := LoadCommittee(strings.NewReader("zzzz 1"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject an id of the wrong length", func() {
			_, err := LoadCommittee(strings.NewReader("abcd 1"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a non numeric stake", func() {
			v := tests.Validator(0)
			_, err := LoadCommittee(strings.NewReader(hex.EncodeToString(v[:]) + " lots"))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a duplicate member", func() {
			v := tests.Validator(0)
			line := hex.EncodeToString(v[:]) + " 1\n"
			_, err := LoadCommittee(strings.NewReader(line + line))
			Expect(err).To(HaveOccurred())
		})

		It("should reject empty data", func() {
			_, err := LoadCommittee(strings.NewReader(""))
			Expect(err).To(HaveOccurred())
		})
	})
})
