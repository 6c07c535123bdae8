package outreach

// Built-in message bodies, one per tier. Wording is part of the
// product contract with the outreach team; edit only in lockstep with
// the expected-output fixtures.
var defaultBodies = map[Tier]string{
	TierExecutive: `Subject: Quick chat about {{.CompanyName}}'s growth trajectory

Hi {{.FirstName}},

Hope you're doing well. As {{.Title}} at {{.CompanyName}}, you're probably focused on scaling operations and exploring strategic opportunities.

At Caprae Capital, we specialize in partnering with {{.Industry}} companies like yours to accelerate growth through our operator-first approach. Rather than just capital, we bring hands-on operational expertise.

Would you be open to a brief conversation about {{.CompanyName}}'s growth plans?

Best regards,
[Your Name]
Caprae Capital Partners`,

	TierOperational: `Subject: Operational efficiency insights for {{.CompanyName}}

Hi {{.FirstName}},

I came across {{.CompanyName}} and was impressed by your position in the {{.Industry}} space.

As {{.Title}}, you likely see firsthand the operational challenges that come with growth. At Caprae Capital, we've helped similar companies streamline operations and unlock new opportunities through our SaaS and M&A-as-a-Service models.

Would you be interested in a quick call to discuss how we could support {{.CompanyName}}'s operational goals?

Best,
[Your Name]
Caprae Capital`,

	TierGeneral: `Subject: Partnership opportunity for {{.CompanyName}}

Hello {{.FirstName}},

I hope this message finds you well. I'm reaching out because {{.CompanyName}} caught our attention as an innovative player in the {{.Industry}} sector.

At Caprae Capital, we focus on empowering businesses through strategic partnerships and operational support. Our unique approach combines capital with hands-on expertise to help companies achieve sustainable growth.

I'd love to explore how we might be able to support {{.CompanyName}}'s objectives.

Kind regards,
[Your Name]
Caprae Capital Partners`,
}
