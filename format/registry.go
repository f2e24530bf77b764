package format

// wellKnownContexts maps the low context codes embedded in compressed
// documents to their registered context URLs. Codes in this table stay
// below MinAppContextCode; applications extend the code space above it.
var wellKnownContexts = map[uint64]string{
	0x10: "https://www.w3.org/ns/activitystreams",
	0x11: "https://www.w3.org/2018/credentials/v1",
	0x12: "https://www.w3.org/ns/did/v1",
	0x13: "https://w3id.org/security/suites/ed25519-2018/v1",
	0x14: "https://w3id.org/security/suites/ed25519-2020/v1",
	0x15: "https://w3id.org/cit/v1",
	0x16: "https://w3id.org/age/v1",
	0x17: "https://w3id.org/security/suites/x25519-2020/v1",
	0x18: "https://w3id.org/veres-one/v1",
	0x19: "https://w3id.org/webkms/v1",
	0x1a: "https://w3id.org/zcap/v1",
	0x1b: "https://w3id.org/security/suites/hmac-2019/v1",
	0x1c: "https://w3id.org/security/suites/aes-2019/v1",
	0x1d: "https://w3id.org/vaccination/v1",
	0x1e: "https://w3id.org/vc-revocation-list-2020/v1",
}

var wellKnownCodes = func() map[string]uint64 {
	m := make(map[string]uint64, len(wellKnownContexts))
	for code, url := range wellKnownContexts {
		m[url] = code
	}

	return m
}()

// RegistryURL returns the context URL registered under a well-known code.
func RegistryURL(code uint64) (string, bool) {
	url, ok := wellKnownContexts[code]
	return url, ok
}

// RegistryCode returns the well-known code registered for a context URL.
func RegistryCode(url string) (uint64, bool) {
	code, ok := wellKnownCodes[url]
	return code, ok
}
