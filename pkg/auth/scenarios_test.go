package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/clients/tokenservice"
)

// End-to-end resolution scenarios against a stub token service speaking
// the real wire format.
var _ = Describe("Resolver", func() {
	var (
		service     *httptest.Server
		serviceBody string
		serviceHits int
	)

	newResolver := func(fallback auth.FallbackTokens) *auth.Resolver {
		fetcher := tokenservice.New(service.URL, "test-key", 0, nil)
		return auth.NewResolver(fetcher, fallback, nil, nil)
	}

	BeforeEach(func() {
		serviceHits = 0
		service = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			serviceHits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(serviceBody))
		}))
	})

	AfterEach(func() {
		service.Close()
	})

	Describe("scenario A: bot lookup finds only a user-prefixed token", func() {
		It("falls through to the configured fallback", func() {
			serviceBody = `{"access_token": "xoxp-abc"}`
			resolver := newResolver(auth.FallbackTokens{Bot: "xoxb-env"})

			token, err := resolver.Resolve(context.Background(), auth.TokenKindBot, "u1")

			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("xoxb-env"))
			Expect(serviceHits).To(Equal(1))
		})
	})

	Describe("scenario B: user lookup finds a user-prefixed token", func() {
		It("accepts it immediately", func() {
			serviceBody = `{"access_token": "xoxp-abc"}`
			resolver := newResolver(auth.FallbackTokens{User: "xoxp-env"})

			token, err := resolver.Resolve(context.Background(), auth.TokenKindUser, "u1")

			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("xoxp-abc"))
		})
	})

	Describe("scenario C: no identity with a bot header present", func() {
		It("returns the header value without calling the service", func() {
			serviceBody = `{"bot_token": "xoxb-service"}`
			resolver := newResolver(auth.FallbackTokens{})
			ctx := auth.WithRequestHeaders(context.Background(), map[string]string{
				"X-Slack-Bot-Token": "xoxb-123",
			})

			token, err := resolver.Resolve(ctx, auth.TokenKindBot, "")

			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("xoxb-123"))
			Expect(serviceHits).To(BeZero())
		})
	})

	Describe("scenario D: every source exhausted", func() {
		It("fails with a remediation-bearing credential error", func() {
			resolver := auth.NewResolver(nil, auth.FallbackTokens{}, nil, nil)

			_, err := resolver.Resolve(context.Background(), auth.TokenKindUser, "")

			var credErr *auth.CredentialError
			Expect(err).To(HaveOccurred())
			Expect(errors.As(err, &credErr)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("user_id"))
			Expect(err.Error()).To(ContainSubstring("X-Slack-User-Token"))
			Expect(err.Error()).To(ContainSubstring("SLACK_USER_TOKEN"))
		})
	})

	Describe("service returning a record list", func() {
		It("uses the first element", func() {
			serviceBody = `[{"access_token": "xoxp-first"}, {"access_token": "xoxp-second"}]`
			resolver := newResolver(auth.FallbackTokens{})

			token, err := resolver.Resolve(context.Background(), auth.TokenKindUser, "u1")

			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("xoxp-first"))
		})
	})

	Describe("unreachable service", func() {
		It("continues to the fallback token", func() {
			service.Close()
			resolver := newResolver(auth.FallbackTokens{User: "xoxp-env"})

			token, err := resolver.Resolve(context.Background(), auth.TokenKindUser, "u1")

			Expect(err).NotTo(HaveOccurred())
			Expect(token).To(Equal("xoxp-env"))
		})
	})
})
